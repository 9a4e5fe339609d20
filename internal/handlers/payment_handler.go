package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type PaymentHandler struct {
	BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
	}
}

// CreateCheckoutSession opens a hosted checkout page for an application's
// fees. Owner only.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	session, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CreatePaymentIntent returns a client secret for an embedded payment
// form. Owner only.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, intent)
}

// ConfirmPayment verifies a finished checkout session with the provider
// and records it. Safe to call more than once for the same session.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Confirming payment", "session_id", req.SessionID, "application_id", req.ApplicationID)

	result, err := h.paymentService.ConfirmPayment(c.Request.Context(), &req, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyPayments returns the caller's payment history.
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	actor := GetActorFromContext(c)
	limit, offset := h.pagination(c)

	resp, err := h.paymentService.History(c.Request.Context(), actor.Email, repositories.PaymentFilters{
		Limit:  limit,
		Offset: offset,
	}, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPaymentsByUser returns another subject's payment history. Owner or
// moderator, enforced by the service.
func (h *PaymentHandler) GetPaymentsByUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid email"})
		return
	}

	limit, offset := h.pagination(c)
	resp, err := h.paymentService.History(c.Request.Context(), email, repositories.PaymentFilters{
		Limit:  limit,
		Offset: offset,
	}, GetActorFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
