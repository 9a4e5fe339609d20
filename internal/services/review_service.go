package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

type reviewService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewReviewService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ReviewService {
	return &reviewService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *reviewService) Create(ctx context.Context, req *CreateReviewRequest, actor Actor) (*models.Review, error) {
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

	review := &models.Review{
		ScholarshipID:   scholarship.ID,
		ScholarshipName: scholarship.ScholarshipName,
		UniversityName:  scholarship.UniversityName,
		UserEmail:       strings.ToLower(strings.TrimSpace(actor.Email)),
		UserName:        actor.Name,
		UserImage:       req.UserImage,
		RatingPoint:     req.RatingPoint,
		ReviewComment:   req.ReviewComment,
		ReviewDate:      time.Now(),
	}

	if err := s.repo.Review().Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("Review created", "review_id", review.ID, "scholarship_id", scholarship.ID, "by", review.UserEmail)
	return review, nil
}

// Update is author only. Moderators cannot edit someone else's words.
func (s *reviewService) Update(ctx context.Context, id uint, req *UpdateReviewRequest, actor Actor) (*models.Review, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	review, err := s.getReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor.Role, authz.WriteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: review.UserEmail,
	}); err != nil {
		return nil, err
	}

	if req.RatingPoint != nil {
		review.RatingPoint = *req.RatingPoint
	}
	if req.ReviewComment != nil {
		review.ReviewComment = *req.ReviewComment
	}

	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.logger.Info("Review updated", "review_id", id, "by", actor.Email)
	return review, nil
}

// Delete is allowed for the author or for a moderator taking a review down.
func (s *reviewService) Delete(ctx context.Context, id uint, actor Actor) error {
	review, err := s.getReview(ctx, id)
	if err != nil {
		return err
	}

	err = authz.Authorize(actor.Role, authz.DeleteOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: review.UserEmail,
	})
	if errors.Is(err, authz.ErrForbidden) {
		err = authz.Authorize(actor.Role, authz.DeletePrivileged, authz.Ownership{SubjectEmail: actor.Email})
	}
	if err != nil {
		return err
	}

	if err := s.repo.Review().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("Review deleted", "review_id", id, "by", actor.Email)
	return nil
}

func (s *reviewService) List(ctx context.Context, filters repositories.ReviewFilters, actor Actor) (*ReviewListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ReadAll, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	reviews, total, err := s.repo.Review().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return s.listResponse(reviews, total, filters), nil
}

// GetByScholarship is public: reviews are part of the scholarship page.
func (s *reviewService) GetByScholarship(ctx context.Context, scholarshipID uint, filters repositories.ReviewFilters) (*ReviewListResponse, error) {
	reviews, total, err := s.repo.Review().GetByScholarship(ctx, scholarshipID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarship reviews: %w", err)
	}
	return s.listResponse(reviews, total, filters), nil
}

func (s *reviewService) GetByUser(ctx context.Context, email string, filters repositories.ReviewFilters, actor Actor) (*ReviewListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return nil, err
	}

	reviews, total, err := s.repo.Review().GetByUserEmail(ctx, email, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}
	return s.listResponse(reviews, total, filters), nil
}

func (s *reviewService) getReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.repo.Review().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) listResponse(reviews []*models.Review, total int64, filters repositories.ReviewFilters) *ReviewListResponse {
	return &ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Page:    pageFromOffset(filters.Offset, filters.Limit),
		Size:    filters.Limit,
	}
}
