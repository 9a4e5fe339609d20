package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/scholar-stream/scholarship-service/internal/cache"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

type ScholarshipPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewScholarshipPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ScholarshipRepository {
	return &ScholarshipPostgreSQL{db: db, cache: cacheManager}
}

func (r *ScholarshipPostgreSQL) Create(ctx context.Context, scholarship *models.Scholarship) error {
	if err := r.db.WithContext(ctx).Create(scholarship).Error; err != nil {
		return fmt.Errorf("failed to create scholarship: %w", err)
	}
	r.invalidateListCaches(ctx)
	return nil
}

func (r *ScholarshipPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Scholarship, error) {
	var scholarship models.Scholarship

	cacheKey := fmt.Sprintf("id:%d", id)
	if err := r.cache.Scholarship.Get(ctx, cacheKey, &scholarship); err == nil {
		return &scholarship, nil
	}

	if err := r.db.WithContext(ctx).First(&scholarship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	_ = r.cache.Scholarship.Set(ctx, cacheKey, &scholarship, cache.ScholarshipCacheConfig.TTL)
	return &scholarship, nil
}

func (r *ScholarshipPostgreSQL) Update(ctx context.Context, scholarship *models.Scholarship) error {
	if err := r.db.WithContext(ctx).Save(scholarship).Error; err != nil {
		return fmt.Errorf("failed to update scholarship: %w", err)
	}
	_ = r.cache.Scholarship.Delete(ctx, fmt.Sprintf("id:%d", scholarship.ID))
	r.invalidateListCaches(ctx)
	return nil
}

func (r *ScholarshipPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Scholarship{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete scholarship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	_ = r.cache.Scholarship.Delete(ctx, fmt.Sprintf("id:%d", id))
	r.invalidateListCaches(ctx)
	return nil
}

func (r *ScholarshipPostgreSQL) List(ctx context.Context, filters repositories.ScholarshipFilters) ([]*models.Scholarship, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Scholarship{})
	query = r.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count scholarships: %w", err)
	}

	var scholarships []*models.Scholarship
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&scholarships).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list scholarships: %w", err)
	}

	return scholarships, total, nil
}

func (r *ScholarshipPostgreSQL) GetTop(ctx context.Context, limit int) ([]*models.Scholarship, error) {
	if limit <= 0 {
		limit = 6
	}

	var scholarships []*models.Scholarship

	cacheKey := fmt.Sprintf("top:%d", limit)
	if err := r.cache.Scholarship.Get(ctx, cacheKey, &scholarships); err == nil {
		return scholarships, nil
	}

	err := r.db.WithContext(ctx).
		Order("application_fees ASC").
		Order("post_date DESC").
		Limit(limit).
		Find(&scholarships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top scholarships: %w", err)
	}

	_ = r.cache.Scholarship.Set(ctx, cacheKey, scholarships, cache.ScholarshipCacheConfig.TTL)
	return scholarships, nil
}

func (r *ScholarshipPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Scholarship{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check scholarship existence: %w", err)
	}
	return count > 0, nil
}

func (r *ScholarshipPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ScholarshipFilters) *gorm.DB {
	if filters.Query != "" {
		like := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where(
			"LOWER(scholarship_name) LIKE ? OR LOWER(university_name) LIKE ? OR LOWER(degree) LIKE ?",
			like, like, like,
		)
	}
	if filters.Category != nil {
		query = query.Where("scholarship_category = ?", *filters.Category)
	}
	if filters.Degree != nil {
		query = query.Where("degree = ?", *filters.Degree)
	}
	if filters.Country != "" {
		query = query.Where("LOWER(university_country) = ?", strings.ToLower(filters.Country))
	}
	return query
}

func (r *ScholarshipPostgreSQL) invalidateListCaches(ctx context.Context) {
	_ = r.cache.Scholarship.InvalidatePattern(ctx, "top:*")
	_ = r.cache.Stats.InvalidatePattern(ctx, "*")
}
