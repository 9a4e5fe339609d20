package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type ScholarshipHandler struct {
	BaseHandler
	scholarshipService services.ScholarshipService
}

func NewScholarshipHandler(scholarshipService services.ScholarshipService, logger utils.Logger) *ScholarshipHandler {
	return &ScholarshipHandler{
		BaseHandler:        NewBaseHandler(logger),
		scholarshipService: scholarshipService,
	}
}

// CreateScholarship posts a new scholarship. Admin only.
func (h *ScholarshipHandler) CreateScholarship(c *gin.Context) {
	var req services.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	scholarship, err := h.scholarshipService.Create(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scholarship)
}

// GetScholarship returns one scholarship with its average rating. Public.
func (h *ScholarshipHandler) GetScholarship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	scholarship, err := h.scholarshipService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarship)
}

// ListScholarships returns the public scholarship catalog with filters.
func (h *ScholarshipHandler) ListScholarships(c *gin.Context) {
	resp, err := h.scholarshipService.List(c.Request.Context(), h.parseFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTopScholarships returns the landing page picks. Public.
func (h *ScholarshipHandler) GetTopScholarships(c *gin.Context) {
	limit := h.parseIntQuery(c, "limit", 6)
	if limit < 1 || limit > 20 {
		limit = 6
	}

	scholarships, err := h.scholarshipService.GetTop(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarships)
}

// UpdateScholarship updates scholarship details. Admin only.
func (h *ScholarshipHandler) UpdateScholarship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating scholarship", "scholarship_id", id)

	scholarship, err := h.scholarshipService.Update(c.Request.Context(), id, &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarship)
}

// DeleteScholarship removes a scholarship. Admin only.
func (h *ScholarshipHandler) DeleteScholarship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.scholarshipService.Delete(c.Request.Context(), id, GetActorFromContext(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Scholarship deleted successfully"})
}

func (h *ScholarshipHandler) parseFilters(c *gin.Context) repositories.ScholarshipFilters {
	limit, offset := h.pagination(c)

	filters := repositories.ScholarshipFilters{
		Query:     c.Query("q"),
		Country:   c.Query("country"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}

	if category := c.Query("category"); category != "" {
		sc := models.ScholarshipCategory(category)
		filters.Category = &sc
	}
	if degree := c.Query("degree"); degree != "" {
		d := models.Degree(degree)
		filters.Degree = &d
	}

	return filters
}
