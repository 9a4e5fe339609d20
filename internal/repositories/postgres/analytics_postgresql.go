package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/scholar-stream/scholarship-service/internal/cache"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

type AnalyticsPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewAnalyticsPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AnalyticsRepository {
	return &AnalyticsPostgreSQL{db: db, cache: cacheManager}
}

func (r *AnalyticsPostgreSQL) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	var stats repositories.PlatformStats

	if err := r.cache.Stats.Get(ctx, "platform", &stats); err == nil {
		return &stats, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Scholarship{}).Count(&stats.TotalScholarships).Error; err != nil {
		return nil, fmt.Errorf("failed to count scholarships: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	var revenue *float64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	_ = r.cache.Stats.Set(ctx, "platform", &stats, cache.StatsCacheConfig.TTL)
	return &stats, nil
}

func (r *AnalyticsPostgreSQL) GetApplicationsByCategory(ctx context.Context) ([]repositories.CategoryCount, error) {
	var counts []repositories.CategoryCount

	if err := r.cache.Stats.Get(ctx, "by-category", &counts); err == nil {
		return counts, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("scholarship_category AS category, COUNT(*) AS count, SUM(application_fees) AS fees").
		Group("scholarship_category").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group applications by category: %w", err)
	}

	_ = r.cache.Stats.Set(ctx, "by-category", counts, cache.StatsCacheConfig.TTL)
	return counts, nil
}

func (r *AnalyticsPostgreSQL) GetApplicationsByStatus(ctx context.Context) ([]repositories.StatusCount, error) {
	var counts []repositories.StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("application_status AS status, COUNT(*) AS count").
		Group("application_status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group applications by status: %w", err)
	}
	return counts, nil
}

func (r *AnalyticsPostgreSQL) GetStudentStats(ctx context.Context, email string) (*repositories.StudentStats, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	stats := &repositories.StudentStats{}

	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("LOWER(user_email) = ?", email).
		Count(&stats.TotalApplications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count student applications: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("LOWER(user_email) = ?", email).
		Count(&stats.TotalReviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count student reviews: %w", err)
	}

	var paid *float64
	err = r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("LOWER(email) = ?", email).
		Scan(&paid).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum student payments: %w", err)
	}
	if paid != nil {
		stats.TotalPaid = *paid
	}

	err = r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("application_status AS status, COUNT(*) AS count").
		Where("LOWER(user_email) = ?", email).
		Group("application_status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group student applications: %w", err)
	}

	return stats, nil
}

func (r *AnalyticsPostgreSQL) GetModeratorStats(ctx context.Context) (*repositories.ModeratorStats, error) {
	stats := &repositories.ModeratorStats{}

	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("application_status = ?", models.ApplicationPending).
		Count(&stats.PendingApplications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("application_status = ?", models.ApplicationProcessing).
		Count(&stats.ProcessingApplications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count processing applications: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	return stats, nil
}

func (r *AnalyticsPostgreSQL) GetTopUniversities(ctx context.Context, limit int) ([]repositories.UniversityCount, error) {
	if limit <= 0 {
		limit = 10
	}

	var counts []repositories.UniversityCount

	cacheKey := fmt.Sprintf("top-universities:%d", limit)
	if err := r.cache.Stats.Get(ctx, cacheKey, &counts); err == nil {
		return counts, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("university_name, COUNT(*) AS applications").
		Group("university_name").
		Order("applications DESC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank universities: %w", err)
	}

	_ = r.cache.Stats.Set(ctx, cacheKey, counts, cache.StatsCacheConfig.TTL)
	return counts, nil
}
