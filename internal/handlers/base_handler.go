package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the shared helpers every handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLoggerFromContext(c).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLoggerFromContext(c).Error(msg, append(args, "error", err)...)
}

func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
		})
		return 0
	}
	return uint(id)
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// pagination reads page/size query params and converts them to
// limit/offset. Size is capped so a single request cannot dump a table.
func (h *BaseHandler) pagination(c *gin.Context) (limit, offset int) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return size, (page - 1) * size
}

// handleServiceError maps service errors to HTTP responses. Lifecycle
// guard violations are conflicts, not silent successes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, authz.ErrUnauthenticated), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized access",
		})
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden - insufficient permissions",
		})
	case errors.Is(err, services.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invalid application status transition",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrApplicationNotEditable):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Application can only be edited while pending",
		})
	case errors.Is(err, services.ErrApplicationNotDeletable):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Application can only be deleted while pending",
		})
	case errors.Is(err, services.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "User already exists",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Resource conflict",
		})
	case errors.Is(err, services.ErrScholarshipClosed):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Scholarship application deadline has passed",
		})
	case errors.Is(err, services.ErrPaymentNotConfirmed):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Payment session is not paid",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
	case errors.Is(err, services.ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Scholarship not found",
		})
	case errors.Is(err, services.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Application not found",
		})
	case errors.Is(err, services.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Review not found",
		})
	case errors.Is(err, services.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Payment not found",
		})
	case errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Bad request",
		})
	case errors.Is(err, services.ErrUpstreamFailure):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Payment provider unavailable",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
