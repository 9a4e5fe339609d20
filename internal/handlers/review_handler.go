package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id, GetActorFromContext(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Review deleted successfully"})
}

// ListReviews returns all reviews. Moderators and admins.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	resp, err := h.reviewService.List(c.Request.Context(), h.parseFilters(c), GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetScholarshipReviews returns a scholarship's reviews. Public.
func (h *ReviewHandler) GetScholarshipReviews(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	resp, err := h.reviewService.GetByScholarship(c.Request.Context(), id, h.parseFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMyReviews returns the caller's own reviews.
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	actor := GetActorFromContext(c)

	resp, err := h.reviewService.GetByUser(c.Request.Context(), actor.Email, h.parseFilters(c), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) parseFilters(c *gin.Context) repositories.ReviewFilters {
	limit, offset := h.pagination(c)
	return repositories.ReviewFilters{
		Limit:  limit,
		Offset: offset,
	}
}
