package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/events"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

const defaultCurrency = "usd"

type paymentService struct {
	repo           repositories.Repository
	provider       repositories.PaymentProvider
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewPaymentService(repo repositories.Repository, provider repositories.PaymentProvider, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) PaymentService {
	return &paymentService{
		repo:           repo,
		provider:       provider,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest, actor Actor) (*repositories.CheckoutSession, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	application, err := s.payableApplication(ctx, req.ApplicationID, actor)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, repositories.ChargeRequest{
		Amount:        application.ApplicationFees + application.ServiceCharge,
		Currency:      defaultCurrency,
		Description:   fmt.Sprintf("Application fee for %s", application.ScholarshipName),
		CustomerEmail: application.UserEmail,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		Metadata: map[string]string{
			"application_id": strconv.FormatUint(uint64(application.ID), 10),
			"scholarship_id": strconv.FormatUint(uint64(application.ScholarshipID), 10),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: checkout session: %v", ErrUpstreamFailure, err)
	}

	s.logger.Info("Checkout session created",
		"application_id", application.ID,
		"session_id", session.SessionID)
	return session, nil
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest, actor Actor) (*repositories.PaymentIntent, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	application, err := s.payableApplication(ctx, req.ApplicationID, actor)
	if err != nil {
		return nil, err
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, repositories.ChargeRequest{
		Amount:        application.ApplicationFees + application.ServiceCharge,
		Currency:      defaultCurrency,
		Description:   fmt.Sprintf("Application fee for %s", application.ScholarshipName),
		CustomerEmail: application.UserEmail,
		Metadata: map[string]string{
			"application_id": strconv.FormatUint(uint64(application.ID), 10),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: payment intent: %v", ErrUpstreamFailure, err)
	}

	s.logger.Info("Payment intent created",
		"application_id", application.ID,
		"intent_id", intent.IntentID)
	return intent, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest, actor Actor) (*RecordPaymentResult, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	application, err := s.payableApplication(ctx, req.ApplicationID, actor)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.RetrieveSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve session: %v", ErrUpstreamFailure, err)
	}

	if result.PaymentStatus != "paid" {
		return nil, ErrPaymentNotConfirmed
	}

	return s.RecordConfirmedPayment(ctx, result.TransactionID, application.ID, result)
}

// RecordConfirmedPayment records a confirmed payment exactly once. The
// payment insert and the application's payment status flip happen in one
// transaction; a redelivery hits the unique transaction id index and is
// reported as already recorded without touching the application again.
func (s *paymentService) RecordConfirmedPayment(ctx context.Context, transactionID string, applicationID uint, details *repositories.SessionResult) (*RecordPaymentResult, error) {
	if transactionID == "" {
		return nil, NewBusinessRuleError("payment-transaction-id", "transaction id is required")
	}

	application, err := s.repo.Application().GetByID(ctx, applicationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	payment := &models.Payment{
		TransactionID: transactionID,
		ApplicationID: application.ID,
		ScholarshipID: application.ScholarshipID,
		Email:         application.UserEmail,
		Amount:        details.AmountTotal,
		Currency:      details.Currency,
		PaymentStatus: details.PaymentStatus,
		PaidAt:        time.Now(),
	}
	if len(details.Metadata) > 0 {
		if raw, merr := json.Marshal(details.Metadata); merr == nil {
			payment.ProviderMetadata = raw
		}
	}

	var duplicate bool
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Payment().Create(ctx, payment); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				duplicate = true
				return nil
			}
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return tx.Application().UpdatePaymentStatus(ctx, application.ID, models.PaymentPaid)
	})
	if err != nil {
		return nil, err
	}

	if duplicate {
		existing, err := s.repo.Payment().GetByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load recorded payment: %w", err)
		}
		if existing.Amount != details.AmountTotal {
			s.logger.Warn("Duplicate payment delivery with different amount",
				"transaction_id", transactionID,
				"recorded_amount", existing.Amount,
				"delivered_amount", details.AmountTotal)
		}
		s.logger.Info("Payment already recorded", "transaction_id", transactionID)
		return &RecordPaymentResult{Outcome: OutcomeAlreadyRecorded, Payment: existing}, nil
	}

	s.logger.Info("Payment recorded",
		"transaction_id", transactionID,
		"application_id", application.ID,
		"amount", payment.Amount)

	s.publishEvent(ctx, events.NewEvent(events.EventPaymentRecorded, events.PaymentRecordedEvent{
		TransactionID: transactionID,
		ApplicationID: application.ID,
		Email:         application.UserEmail,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
	}))

	return &RecordPaymentResult{Outcome: OutcomeRecorded, Payment: payment}, nil
}

func (s *paymentService) History(ctx context.Context, email string, filters repositories.PaymentFilters, actor Actor) (*PaymentListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return nil, err
	}

	filters.Email = email
	payments, total, err := s.repo.Payment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &PaymentListResponse{
		Payments: payments,
		Total:    total,
		Page:     pageFromOffset(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

// payableApplication loads an application and checks the caller owns it.
func (s *paymentService) payableApplication(ctx context.Context, id uint, actor Actor) (*models.Application, error) {
	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if err := authz.Authorize(actor.Role, authz.WriteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: application.UserEmail,
	}); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *paymentService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
	}
}
