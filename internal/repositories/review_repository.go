package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// ReviewFilters defines filters for review queries
type ReviewFilters struct {
	ScholarshipID *uint
	UserEmail     string
	Limit         int
	Offset        int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ReviewFilters) ([]*models.Review, int64, error)
	GetByScholarship(ctx context.Context, scholarshipID uint, filters ReviewFilters) ([]*models.Review, int64, error)
	GetByUserEmail(ctx context.Context, email string, filters ReviewFilters) ([]*models.Review, int64, error)

	// AverageRating returns the mean rating for a scholarship, 0 when it
	// has no reviews.
	AverageRating(ctx context.Context, scholarshipID uint) (float64, error)
}
