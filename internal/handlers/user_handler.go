package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// RegisterUser creates a user record. Public; the role is always student.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := GetActorFromContext(c)

	user, err := h.userService.GetByEmail(c.Request.Context(), actor.Email, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMyRole returns the caller's stored role.
func (h *UserHandler) GetMyRole(c *gin.Context) {
	actor := GetActorFromContext(c)

	role, err := h.userService.GetRole(c.Request.Context(), actor.Email, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": actor.Email, "role": role})
}

// ListUsers returns all users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := h.pagination(c)

	filters := repositories.UserFilters{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if role := c.Query("role"); role != "" {
		r := models.NormalizeRole(role)
		filters.Role = &r
	}

	resp, err := h.userService.List(c.Request.Context(), filters, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateUserRole grants or revokes privileges. Admin only; super-admin
// grants need a super-admin caller.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating user role", "user_id", id, "role", req.Role)

	user, err := h.userService.UpdateRole(c.Request.Context(), id, &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user record. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id, GetActorFromContext(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted successfully"})
}
