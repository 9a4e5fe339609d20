package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// ApplicationFilters defines filters for application queries
type ApplicationFilters struct {
	UserEmail     string
	ScholarshipID *uint
	Status        *models.ApplicationStatus
	PaymentStatus *models.PaymentStatus
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ApplicationFilters) ([]*models.Application, int64, error)
	GetByUserEmail(ctx context.Context, email string, filters ApplicationFilters) ([]*models.Application, int64, error)

	// UpdateStatus persists a status change together with optional feedback.
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus, feedback *string) error

	// UpdatePaymentStatus flips only the payment status column.
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error
}
