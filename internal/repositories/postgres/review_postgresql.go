package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

type ReviewPostgreSQL struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db}
}

func (r *ReviewPostgreSQL) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (r *ReviewPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ReviewPostgreSQL) List(ctx context.Context, filters repositories.ReviewFilters) ([]*models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})

	if filters.ScholarshipID != nil {
		query = query.Where("scholarship_id = ?", *filters.ScholarshipID)
	}
	if filters.UserEmail != "" {
		query = query.Where("LOWER(user_email) = ?", strings.ToLower(strings.TrimSpace(filters.UserEmail)))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []*models.Review
	query = applyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *ReviewPostgreSQL) GetByScholarship(ctx context.Context, scholarshipID uint, filters repositories.ReviewFilters) ([]*models.Review, int64, error) {
	filters.ScholarshipID = &scholarshipID
	return r.List(ctx, filters)
}

func (r *ReviewPostgreSQL) GetByUserEmail(ctx context.Context, email string, filters repositories.ReviewFilters) ([]*models.Review, int64, error) {
	filters.UserEmail = email
	return r.List(ctx, filters)
}

func (r *ReviewPostgreSQL) AverageRating(ctx context.Context, scholarshipID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating_point)").
		Where("scholarship_id = ?", scholarshipID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
