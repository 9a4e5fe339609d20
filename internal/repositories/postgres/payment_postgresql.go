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

type PaymentPostgreSQL struct {
	db *gorm.DB
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &PaymentPostgreSQL{db: db}
}

func (r *PaymentPostgreSQL) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		// The unique index on transaction_id is the idempotency guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentPostgreSQL) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *PaymentPostgreSQL) GetByApplicationID(ctx context.Context, applicationID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for application: %w", err)
	}
	return payments, nil
}

func (r *PaymentPostgreSQL) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})

	if filters.Email != "" {
		query = query.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(filters.Email)))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []*models.Payment
	query = applyPaginationAndSort(query, "paid_at", "desc", filters.Limit, filters.Offset)
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, total, nil
}

// isUniqueViolation matches postgres unique constraint errors that gorm
// does not translate.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
