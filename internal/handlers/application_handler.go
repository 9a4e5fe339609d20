package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
	}
}

// CreateApplication submits a new application for the caller.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req services.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetApplication returns one application. Owner or moderator.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	application, err := h.applicationService.GetByID(c.Request.Context(), id, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// ListApplications returns all applications. Moderators and admins.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	resp, err := h.applicationService.List(c.Request.Context(), h.parseFilters(c), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMyApplications returns the caller's own applications.
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	actor := GetActorFromContext(c)

	resp, err := h.applicationService.GetByUser(c.Request.Context(), actor.Email, h.parseFilters(c), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetApplicationsByUser returns another subject's applications. Owner or
// moderator, enforced by the service.
func (h *ApplicationHandler) GetApplicationsByUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid email"})
		return
	}

	resp, err := h.applicationService.GetByUser(c.Request.Context(), email, h.parseFilters(c), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateApplicationStatus moves an application through the lifecycle.
// Moderators and admins only.
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating application status", "application_id", id, "status", req.Status)

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), id, &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateApplication is the owner edit path.
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	application, err := h.applicationService.Update(c.Request.Context(), id, &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// DeleteApplication withdraws a pending application. Owner only.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), id, GetActorFromContext(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Application deleted successfully"})
}

func (h *ApplicationHandler) parseFilters(c *gin.Context) repositories.ApplicationFilters {
	limit, offset := h.pagination(c)

	filters := repositories.ApplicationFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}

	if status := c.Query("status"); status != "" {
		s := models.ApplicationStatus(status)
		filters.Status = &s
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		p := models.PaymentStatus(paymentStatus)
		filters.PaymentStatus = &p
	}

	return filters
}
