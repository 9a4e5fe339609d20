package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// UserFilters defines filters for user queries
type UserFilters struct {
	Query  string // Search query for name or email
	Role   *models.UserRole
	Limit  int
	Offset int
}

// UserRepository is the role store. GetRole always hits the database so a
// role change is visible on the next request; nothing here is cached.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetRole returns the normalized role for an email. A missing record
	// yields RoleStudent, never an error.
	GetRole(ctx context.Context, email string) (models.UserRole, error)
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Delete(ctx context.Context, id uint) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
