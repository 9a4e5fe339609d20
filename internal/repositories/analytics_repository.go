package repositories

import (
	"context"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// PlatformStats are the admin dashboard headline numbers.
type PlatformStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalScholarships int64   `json:"total_scholarships"`
	TotalApplications int64   `json:"total_applications"`
	TotalReviews      int64   `json:"total_reviews"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// CategoryCount is one slice of the applications-by-category chart.
type CategoryCount struct {
	Category models.ScholarshipCategory `json:"category"`
	Count    int64                      `json:"count"`
	Fees     float64                    `json:"fees"`
}

// StatusCount groups applications by lifecycle status.
type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

// StudentStats summarizes a single applicant's activity.
type StudentStats struct {
	TotalApplications int64         `json:"total_applications"`
	TotalReviews      int64         `json:"total_reviews"`
	TotalPaid         float64       `json:"total_paid"`
	ByStatus          []StatusCount `json:"by_status"`
}

// ModeratorStats summarizes the moderation workload.
type ModeratorStats struct {
	PendingApplications    int64 `json:"pending_applications"`
	ProcessingApplications int64 `json:"processing_applications"`
	TotalReviews           int64 `json:"total_reviews"`
}

// UniversityCount is a top-universities leaderboard entry.
type UniversityCount struct {
	UniversityName string `json:"university_name"`
	Applications   int64  `json:"applications"`
}

type AnalyticsRepository interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
	GetApplicationsByCategory(ctx context.Context) ([]CategoryCount, error)
	GetApplicationsByStatus(ctx context.Context) ([]StatusCount, error)
	GetStudentStats(ctx context.Context, email string) (*StudentStats, error)
	GetModeratorStats(ctx context.Context) (*ModeratorStats, error)
	GetTopUniversities(ctx context.Context, limit int) ([]UniversityCount, error)
}
