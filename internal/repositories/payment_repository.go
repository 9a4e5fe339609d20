package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// PaymentFilters defines filters for payment queries
type PaymentFilters struct {
	Email  string
	Limit  int
	Offset int
}

type PaymentRepository interface {
	// Create inserts a payment record. A second insert with the same
	// transaction id fails with a duplicate key error from the unique
	// index; callers rely on that for idempotency.
	Create(ctx context.Context, payment *models.Payment) error

	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	GetByApplicationID(ctx context.Context, applicationID uint) ([]*models.Payment, error)
	List(ctx context.Context, filters PaymentFilters) ([]*models.Payment, int64, error)
}
