package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

type scholarshipService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScholarshipService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ScholarshipService {
	return &scholarshipService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *scholarshipService) Create(ctx context.Context, req *CreateScholarshipRequest, actor Actor) (*models.Scholarship, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	scholarship := &models.Scholarship{
		ScholarshipName:     req.ScholarshipName,
		UniversityName:      req.UniversityName,
		UniversityImage:     req.UniversityImage,
		UniversityCountry:   req.UniversityCountry,
		UniversityCity:      req.UniversityCity,
		UniversityWorldRank: req.UniversityWorldRank,
		SubjectCategory:     req.SubjectCategory,
		ScholarshipCategory: validator.ToScholarshipCategory(req.ScholarshipCategory),
		Degree:              validator.ToDegree(req.Degree),
		TuitionFees:         req.TuitionFees,
		ApplicationFees:     req.ApplicationFees,
		ServiceCharge:       req.ServiceCharge,
		ApplicationDeadline: req.ApplicationDeadline,
		PostDate:            time.Now(),
		PostedUserEmail:     actor.Email,
		Description:         req.Description,
	}

	if err := s.repo.Scholarship().Create(ctx, scholarship); err != nil {
		return nil, fmt.Errorf("failed to create scholarship: %w", err)
	}

	s.logger.Info("Scholarship created", "scholarship_id", scholarship.ID, "by", actor.Email)
	return scholarship, nil
}

func (s *scholarshipService) GetByID(ctx context.Context, id uint) (*ScholarshipResponse, error) {
	scholarship, err := s.repo.Scholarship().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	rating, err := s.repo.Review().AverageRating(ctx, id)
	if err != nil {
		s.logger.Warn("Failed to compute average rating", "scholarship_id", id, "error", err)
		rating = 0
	}

	return &ScholarshipResponse{Scholarship: scholarship, AverageRating: rating}, nil
}

func (s *scholarshipService) Update(ctx context.Context, id uint, req *UpdateScholarshipRequest, actor Actor) (*models.Scholarship, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	scholarship, err := s.repo.Scholarship().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	s.applyUpdates(scholarship, req)

	if err := s.repo.Scholarship().Update(ctx, scholarship); err != nil {
		return nil, fmt.Errorf("failed to update scholarship: %w", err)
	}

	s.logger.Info("Scholarship updated", "scholarship_id", id, "by", actor.Email)
	return scholarship, nil
}

func (s *scholarshipService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return err
	}

	if err := s.repo.Scholarship().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrScholarshipNotFound
		}
		return fmt.Errorf("failed to delete scholarship: %w", err)
	}

	s.logger.Info("Scholarship deleted", "scholarship_id", id, "by", actor.Email)
	return nil
}

func (s *scholarshipService) List(ctx context.Context, filters repositories.ScholarshipFilters) (*ScholarshipListResponse, error) {
	scholarships, total, err := s.repo.Scholarship().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}

	return &ScholarshipListResponse{
		Scholarships: scholarships,
		Total:        total,
		Page:         pageFromOffset(filters.Offset, filters.Limit),
		Size:         filters.Limit,
	}, nil
}

func (s *scholarshipService) GetTop(ctx context.Context, limit int) ([]*models.Scholarship, error) {
	scholarships, err := s.repo.Scholarship().GetTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scholarships: %w", err)
	}
	return scholarships, nil
}

func (s *scholarshipService) applyUpdates(scholarship *models.Scholarship, req *UpdateScholarshipRequest) {
	if req.ScholarshipName != nil {
		scholarship.ScholarshipName = *req.ScholarshipName
	}
	if req.UniversityName != nil {
		scholarship.UniversityName = *req.UniversityName
	}
	if req.UniversityImage != nil {
		scholarship.UniversityImage = *req.UniversityImage
	}
	if req.UniversityCountry != nil {
		scholarship.UniversityCountry = *req.UniversityCountry
	}
	if req.UniversityCity != nil {
		scholarship.UniversityCity = *req.UniversityCity
	}
	if req.UniversityWorldRank != nil {
		scholarship.UniversityWorldRank = *req.UniversityWorldRank
	}
	if req.SubjectCategory != nil {
		scholarship.SubjectCategory = *req.SubjectCategory
	}
	if req.ScholarshipCategory != nil {
		scholarship.ScholarshipCategory = validator.ToScholarshipCategory(*req.ScholarshipCategory)
	}
	if req.Degree != nil {
		scholarship.Degree = validator.ToDegree(*req.Degree)
	}
	if req.TuitionFees != nil {
		scholarship.TuitionFees = req.TuitionFees
	}
	if req.ApplicationFees != nil {
		scholarship.ApplicationFees = *req.ApplicationFees
	}
	if req.ServiceCharge != nil {
		scholarship.ServiceCharge = *req.ServiceCharge
	}
	if req.ApplicationDeadline != nil {
		scholarship.ApplicationDeadline = *req.ApplicationDeadline
	}
	if req.Description != nil {
		scholarship.Description = *req.Description
	}
}
