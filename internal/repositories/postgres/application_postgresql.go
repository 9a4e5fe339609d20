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

type ApplicationPostgreSQL struct {
	db *gorm.DB
}

func NewApplicationPostgreSQL(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db}
}

func (r *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *ApplicationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Preload("Scholarship").
		First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &application, nil
}

func (r *ApplicationPostgreSQL) Update(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Save(application).Error; err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return nil
}

func (r *ApplicationPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ApplicationPostgreSQL) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})
	query = r.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	var applications []*models.Application
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, total, nil
}

func (r *ApplicationPostgreSQL) GetByUserEmail(ctx context.Context, email string, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	filters.UserEmail = email
	return r.List(ctx, filters)
}

func (r *ApplicationPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus, feedback *string) error {
	updates := map[string]interface{}{
		"application_status": status,
	}
	if feedback != nil {
		updates["feedback"] = *feedback
	}

	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ApplicationPostgreSQL) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ApplicationPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ApplicationFilters) *gorm.DB {
	if filters.UserEmail != "" {
		query = query.Where("LOWER(user_email) = ?", strings.ToLower(strings.TrimSpace(filters.UserEmail)))
	}
	if filters.ScholarshipID != nil {
		query = query.Where("scholarship_id = ?", *filters.ScholarshipID)
	}
	if filters.Status != nil {
		query = query.Where("application_status = ?", *filters.Status)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}
	return query
}
