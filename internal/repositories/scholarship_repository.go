package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// ScholarshipFilters defines filters for scholarship queries
type ScholarshipFilters struct {
	Query     string // Matches scholarship name, university name or degree
	Category  *models.ScholarshipCategory
	Degree    *models.Degree
	Country   string
	SortBy    string // application_fees, post_date, created_at
	SortOrder string
	Limit     int
	Offset    int
}

type ScholarshipRepository interface {
	Create(ctx context.Context, scholarship *models.Scholarship) error
	GetByID(ctx context.Context, id uint) (*models.Scholarship, error)
	Update(ctx context.Context, scholarship *models.Scholarship) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ScholarshipFilters) ([]*models.Scholarship, int64, error)

	// GetTop returns the lowest-fee, most recently posted scholarships for
	// the public landing page.
	GetTop(ctx context.Context, limit int) ([]*models.Scholarship, error)

	ExistsByID(ctx context.Context, id uint) (bool, error)
}
