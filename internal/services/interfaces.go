package services

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateScholarshipRequest = validator.ScholarshipCreateRequest
type UpdateScholarshipRequest = validator.ScholarshipUpdateRequest
type CreateApplicationRequest = validator.ApplicationCreateRequest
type UpdateApplicationRequest = validator.ApplicationUpdateRequest
type UpdateApplicationStatusRequest = validator.ApplicationStatusRequest
type CreateReviewRequest = validator.ReviewCreateRequest
type UpdateReviewRequest = validator.ReviewUpdateRequest
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRoleRequest = validator.UserRoleUpdateRequest
type CheckoutSessionRequest = validator.CheckoutSessionRequest
type PaymentIntentRequest = validator.PaymentIntentRequest
type ConfirmPaymentRequest = validator.ConfirmPaymentRequest

// Actor is the verified subject attached to a request. An empty email
// means the identity verifier produced nothing; the gate treats that as
// unauthenticated.
type Actor struct {
	Email string
	Name  string
	Role  models.UserRole
}

type ScholarshipResponse struct {
	*models.Scholarship
	AverageRating float64 `json:"average_rating"`
}

type ScholarshipListResponse struct {
	Scholarships []*models.Scholarship `json:"scholarships"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
}

type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
}

type ReviewListResponse struct {
	Reviews []*models.Review `json:"reviews"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type PaymentListResponse struct {
	Payments []*models.Payment `json:"payments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

// RecordOutcome tells a payment webhook caller whether its delivery was
// the first one. Both outcomes are success.
type RecordOutcome string

const (
	OutcomeRecorded        RecordOutcome = "recorded"
	OutcomeAlreadyRecorded RecordOutcome = "already_recorded"
)

type RecordPaymentResult struct {
	Outcome RecordOutcome   `json:"outcome"`
	Payment *models.Payment `json:"payment"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByEmail(ctx context.Context, email string, actor Actor) (*models.User, error)
	GetRole(ctx context.Context, email string, actor Actor) (models.UserRole, error)
	List(ctx context.Context, filters repositories.UserFilters, actor Actor) (*UserListResponse, error)
	UpdateRole(ctx context.Context, id uint, req *UpdateUserRoleRequest, actor Actor) (*models.User, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type ScholarshipService interface {
	Create(ctx context.Context, req *CreateScholarshipRequest, actor Actor) (*models.Scholarship, error)
	GetByID(ctx context.Context, id uint) (*ScholarshipResponse, error)
	Update(ctx context.Context, id uint, req *UpdateScholarshipRequest, actor Actor) (*models.Scholarship, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	List(ctx context.Context, filters repositories.ScholarshipFilters) (*ScholarshipListResponse, error)
	GetTop(ctx context.Context, limit int) ([]*models.Scholarship, error)
}

// ApplicationService is the lifecycle engine. Every mutation consults the
// authorization gate and the transition table before touching storage.
type ApplicationService interface {
	Apply(ctx context.Context, req *CreateApplicationRequest, actor Actor) (*models.Application, error)
	GetByID(ctx context.Context, id uint, actor Actor) (*models.Application, error)
	List(ctx context.Context, filters repositories.ApplicationFilters, actor Actor) (*ApplicationListResponse, error)
	GetByUser(ctx context.Context, email string, filters repositories.ApplicationFilters, actor Actor) (*ApplicationListResponse, error)

	// UpdateStatus is the moderator/admin transition with optional feedback.
	UpdateStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest, actor Actor) (*models.Application, error)

	// Update is the owner edit, constrained by the lifecycle rules.
	Update(ctx context.Context, id uint, req *UpdateApplicationRequest, actor Actor) (*models.Application, error)

	// Delete is the owner delete, allowed only while pending.
	Delete(ctx context.Context, id uint, actor Actor) error
}

type ReviewService interface {
	Create(ctx context.Context, req *CreateReviewRequest, actor Actor) (*models.Review, error)
	Update(ctx context.Context, id uint, req *UpdateReviewRequest, actor Actor) (*models.Review, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	List(ctx context.Context, filters repositories.ReviewFilters, actor Actor) (*ReviewListResponse, error)
	GetByScholarship(ctx context.Context, scholarshipID uint, filters repositories.ReviewFilters) (*ReviewListResponse, error)
	GetByUser(ctx context.Context, email string, filters repositories.ReviewFilters, actor Actor) (*ReviewListResponse, error)
}

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest, actor Actor) (*repositories.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest, actor Actor) (*repositories.PaymentIntent, error)

	// ConfirmPayment retrieves the session from the provider and records
	// it idempotently.
	ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest, actor Actor) (*RecordPaymentResult, error)

	// RecordConfirmedPayment is the idempotent core: at most one payment
	// row per transaction id, payment insert and application flip in one
	// transaction.
	RecordConfirmedPayment(ctx context.Context, transactionID string, applicationID uint, details *repositories.SessionResult) (*RecordPaymentResult, error)

	History(ctx context.Context, email string, filters repositories.PaymentFilters, actor Actor) (*PaymentListResponse, error)
}

type AnalyticsService interface {
	PlatformStats(ctx context.Context, actor Actor) (*repositories.PlatformStats, error)
	ChartData(ctx context.Context, actor Actor) ([]repositories.CategoryCount, error)
	FullStats(ctx context.Context, actor Actor) (*FullStatsResponse, error)
	ModeratorStats(ctx context.Context, actor Actor) (*repositories.ModeratorStats, error)
	StudentStats(ctx context.Context, email string, actor Actor) (*repositories.StudentStats, error)
}

type FullStatsResponse struct {
	Platform        *repositories.PlatformStats    `json:"platform"`
	ByCategory      []repositories.CategoryCount   `json:"by_category"`
	ByStatus        []repositories.StatusCount     `json:"by_status"`
	TopUniversities []repositories.UniversityCount `json:"top_universities"`
}

// ExportService renders datasets as spreadsheet downloads.
type ExportService interface {
	// ExportApplications writes all applications into an xlsx workbook
	// and returns the serialized bytes.
	ExportApplications(ctx context.Context, actor Actor) ([]byte, error)
}

// ServiceManager wires all services with shared dependencies.
type ServiceManager interface {
	User() UserService
	Scholarship() ScholarshipService
	Application() ApplicationService
	Review() ReviewService
	Payment() PaymentService
	Analytics() AnalyticsService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
