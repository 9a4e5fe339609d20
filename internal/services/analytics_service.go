package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

const topUniversitiesLimit = 5

type analyticsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, logger *slog.Logger) AnalyticsService {
	return &analyticsService{repo: repo, logger: logger}
}

func (s *analyticsService) PlatformStats(ctx context.Context, actor Actor) (*repositories.PlatformStats, error) {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	stats, err := s.repo.Analytics().GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}
	return stats, nil
}

func (s *analyticsService) ChartData(ctx context.Context, actor Actor) ([]repositories.CategoryCount, error) {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	counts, err := s.repo.Analytics().GetApplicationsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chart data: %w", err)
	}
	return counts, nil
}

func (s *analyticsService) FullStats(ctx context.Context, actor Actor) (*FullStatsResponse, error) {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	platform, err := s.repo.Analytics().GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}

	byCategory, err := s.repo.Analytics().GetApplicationsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	byStatus, err := s.repo.Analytics().GetApplicationsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status breakdown: %w", err)
	}

	topUniversities, err := s.repo.Analytics().GetTopUniversities(ctx, topUniversitiesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top universities: %w", err)
	}

	return &FullStatsResponse{
		Platform:        platform,
		ByCategory:      byCategory,
		ByStatus:        byStatus,
		TopUniversities: topUniversities,
	}, nil
}

func (s *analyticsService) ModeratorStats(ctx context.Context, actor Actor) (*repositories.ModeratorStats, error) {
	if err := authz.Authorize(actor.Role, authz.ReadAll, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	stats, err := s.repo.Analytics().GetModeratorStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get moderator stats: %w", err)
	}
	return stats, nil
}

func (s *analyticsService) StudentStats(ctx context.Context, email string, actor Actor) (*repositories.StudentStats, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return nil, err
	}

	stats, err := s.repo.Analytics().GetStudentStats(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get student stats: %w", err)
	}
	return stats, nil
}
