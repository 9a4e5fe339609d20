package repositories

import "context"

// Repository aggregates all repository interfaces behind one handle.
type Repository interface {
	User() UserRepository
	Scholarship() ScholarshipRepository
	Application() ApplicationRepository
	Review() ReviewRepository
	Payment() PaymentRepository
	Analytics() AnalyticsRepository

	// WithTransaction runs fn against a transaction-scoped repository.
	// Rolls back if fn returns an error.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
