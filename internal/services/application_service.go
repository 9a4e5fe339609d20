package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/events"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

type applicationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewApplicationService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ApplicationService {
	return &applicationService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

func (s *applicationService) Apply(ctx context.Context, req *CreateApplicationRequest, actor Actor) (*models.Application, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	if err := authz.Authorize(actor.Role, authz.WriteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: actor.Email,
	}); err != nil {
		return nil, err
	}

	scholarship, err := s.repo.Scholarship().GetByID(ctx, req.ScholarshipID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateApplicationDeadline(scholarship.ApplicationDeadline); len(errs) > 0 {
		return nil, ErrScholarshipClosed
	}

	userName := req.UserName
	if userName == "" {
		userName = actor.Name
	}

	application := &models.Application{
		ScholarshipID:       scholarship.ID,
		UserEmail:           strings.ToLower(strings.TrimSpace(actor.Email)),
		UserName:            userName,
		ScholarshipName:     scholarship.ScholarshipName,
		UniversityName:      scholarship.UniversityName,
		SubjectCategory:     scholarship.SubjectCategory,
		ScholarshipCategory: scholarship.ScholarshipCategory,
		Degree:              scholarship.Degree,
		ApplicationFees:     scholarship.ApplicationFees,
		ServiceCharge:       scholarship.ServiceCharge,
		ApplicationStatus:   models.ApplicationPending,
		PaymentStatus:       models.PaymentUnpaid,
		AppliedAt:           time.Now(),
	}

	if err := s.repo.Application().Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("Application submitted",
		"application_id", application.ID,
		"scholarship_id", scholarship.ID,
		"user_email", application.UserEmail)

	s.publishEvent(ctx, events.NewEvent(events.EventApplicationSubmitted, events.ApplicationStatusChangedEvent{
		ApplicationID: application.ID,
		UserEmail:     application.UserEmail,
		ToStatus:      models.ApplicationPending,
		ChangedBy:     actor.Email,
	}))

	return application, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uint, actor Actor) (*models.Application, error) {
	application, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: application.UserEmail,
	}); err != nil {
		return nil, err
	}

	return application, nil
}

func (s *applicationService) List(ctx context.Context, filters repositories.ApplicationFilters, actor Actor) (*ApplicationListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ReadAll, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	applications, total, err := s.repo.Application().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return &ApplicationListResponse{
		Applications: applications,
		Total:        total,
		Page:         pageFromOffset(filters.Offset, filters.Limit),
		Size:         filters.Limit,
	}, nil
}

func (s *applicationService) GetByUser(ctx context.Context, email string, filters repositories.ApplicationFilters, actor Actor) (*ApplicationListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return nil, err
	}

	applications, total, err := s.repo.Application().GetByUserEmail(ctx, email, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}

	return &ApplicationListResponse{
		Applications: applications,
		Total:        total,
		Page:         pageFromOffset(filters.Offset, filters.Limit),
		Size:         filters.Limit,
	}, nil
}

// UpdateStatus moves an application through the lifecycle. Only
// moderators and admins get here; the transition table decides whether
// the move is legal, and an illegal move is a conflict, never a silent
// no-op.
func (s *applicationService) UpdateStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest, actor Actor) (*models.Application, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	if err := authz.Authorize(actor.Role, authz.ReadAll, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	application, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	from := application.ApplicationStatus
	to := models.ApplicationStatus(req.Status)

	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateStatusTransition(from, to); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatusTransition, errs.Error())
	}

	if err := s.repo.Application().UpdateStatus(ctx, id, to, req.Feedback); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	application.ApplicationStatus = to
	if req.Feedback != nil {
		application.Feedback = req.Feedback
	}

	s.logger.Info("Application status changed",
		"application_id", id,
		"from", from,
		"to", to,
		"by", actor.Email)

	s.publishEvent(ctx, events.NewEvent(events.EventApplicationStatusChanged, events.ApplicationStatusChangedEvent{
		ApplicationID: id,
		UserEmail:     application.UserEmail,
		FromStatus:    from,
		ToStatus:      to,
		ChangedBy:     actor.Email,
		Feedback:      req.Feedback,
	}))

	return application, nil
}

// Update is the owner edit path. Non-payment fields are writable only
// while the application is pending; a payment-status-only update is
// allowed regardless of status.
func (s *applicationService) Update(ctx context.Context, id uint, req *UpdateApplicationRequest, actor Actor) (*models.Application, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	application, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor.Role, authz.WriteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: application.UserEmail,
	}); err != nil {
		return nil, err
	}

	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateOwnerEdit(req, application.ApplicationStatus); len(errs) > 0 {
		return nil, ErrApplicationNotEditable
	}

	if req.UserName != nil {
		application.UserName = *req.UserName
	}
	if req.SubjectCategory != nil {
		application.SubjectCategory = *req.SubjectCategory
	}
	if req.Degree != nil {
		application.Degree = validator.ToDegree(*req.Degree)
	}
	if req.PaymentStatus != nil {
		application.PaymentStatus = models.PaymentStatus(*req.PaymentStatus)
	}

	if err := s.repo.Application().Update(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	s.logger.Info("Application updated", "application_id", id, "by", actor.Email)
	return application, nil
}

// Delete removes an owner's pending application. A non-pending
// application is not deletable by its owner under any circumstances.
func (s *applicationService) Delete(ctx context.Context, id uint, actor Actor) error {
	application, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor.Role, authz.DeleteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: application.UserEmail,
	}); err != nil {
		return err
	}

	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateOwnerDelete(application.ApplicationStatus); len(errs) > 0 {
		return ErrApplicationNotDeletable
	}

	if err := s.repo.Application().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to delete application: %w", err)
	}

	s.logger.Info("Application deleted", "application_id", id, "by", actor.Email)

	s.publishEvent(ctx, events.NewEvent(events.EventApplicationDeleted, events.ApplicationStatusChangedEvent{
		ApplicationID: id,
		UserEmail:     application.UserEmail,
		FromStatus:    application.ApplicationStatus,
		ChangedBy:     actor.Email,
	}))

	return nil
}

func (s *applicationService) getApplication(ctx context.Context, id uint) (*models.Application, error) {
	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return application, nil
}

// publishEvent is best effort: a broker outage must not fail the request.
func (s *applicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
	}
}
