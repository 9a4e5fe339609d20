package services

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

// fakeRepository is a map-backed Repository for service tests. It honors
// the same contracts as the postgres implementation: not-found errors,
// unique transaction ids on payments, student fallback for missing roles.
type fakeRepository struct {
	users        map[uint]*models.User
	scholarships map[uint]*models.Scholarship
	applications map[uint]*models.Application
	reviews      map[uint]*models.Review
	payments     map[string]*models.Payment
	nextID       uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:        make(map[uint]*models.User),
		scholarships: make(map[uint]*models.Scholarship),
		applications: make(map[uint]*models.Application),
		reviews:      make(map[uint]*models.Review),
		payments:     make(map[string]*models.Payment),
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) User() repositories.UserRepository               { return &fakeUserRepo{f} }
func (f *fakeRepository) Scholarship() repositories.ScholarshipRepository { return &fakeScholarshipRepo{f} }
func (f *fakeRepository) Application() repositories.ApplicationRepository { return &fakeApplicationRepo{f} }
func (f *fakeRepository) Review() repositories.ReviewRepository           { return &fakeReviewRepo{f} }
func (f *fakeRepository) Payment() repositories.PaymentRepository         { return &fakePaymentRepo{f} }
func (f *fakeRepository) Analytics() repositories.AnalyticsRepository    { return &fakeAnalyticsRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USER =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = r.f.id()
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetRole(_ context.Context, email string) (models.UserRole, error) {
	for _, u := range r.f.users {
		if strings.EqualFold(u.Email, email) {
			return models.NormalizeRole(string(u.Role)), nil
		}
	}
	return models.RoleStudent, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint, role models.UserRole) error {
	u, ok := r.f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// ===== SCHOLARSHIP =====

type fakeScholarshipRepo struct{ f *fakeRepository }

func (r *fakeScholarshipRepo) Create(_ context.Context, s *models.Scholarship) error {
	s.ID = r.f.id()
	r.f.scholarships[s.ID] = s
	return nil
}

func (r *fakeScholarshipRepo) GetByID(_ context.Context, id uint) (*models.Scholarship, error) {
	s, ok := r.f.scholarships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *fakeScholarshipRepo) Update(_ context.Context, s *models.Scholarship) error {
	if _, ok := r.f.scholarships[s.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.scholarships[s.ID] = s
	return nil
}

func (r *fakeScholarshipRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.f.scholarships[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.scholarships, id)
	return nil
}

func (r *fakeScholarshipRepo) List(_ context.Context, _ repositories.ScholarshipFilters) ([]*models.Scholarship, int64, error) {
	var out []*models.Scholarship
	for _, s := range r.f.scholarships {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeScholarshipRepo) GetTop(_ context.Context, limit int) ([]*models.Scholarship, error) {
	var out []*models.Scholarship
	for _, s := range r.f.scholarships {
		if len(out) == limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeScholarshipRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := r.f.scholarships[id]
	return ok, nil
}

// ===== APPLICATION =====

type fakeApplicationRepo struct{ f *fakeRepository }

func (r *fakeApplicationRepo) Create(_ context.Context, a *models.Application) error {
	a.ID = r.f.id()
	r.f.applications[a.ID] = a
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uint) (*models.Application, error) {
	a, ok := r.f.applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, a *models.Application) error {
	if _, ok := r.f.applications[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *a
	r.f.applications[a.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.f.applications[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.applications, id)
	return nil
}

func (r *fakeApplicationRepo) List(_ context.Context, _ repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var out []*models.Application
	for _, a := range r.f.applications {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) GetByUserEmail(_ context.Context, email string, _ repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var out []*models.Application
	for _, a := range r.f.applications {
		if strings.EqualFold(a.UserEmail, email) {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uint, status models.ApplicationStatus, feedback *string) error {
	a, ok := r.f.applications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.ApplicationStatus = status
	if feedback != nil {
		a.Feedback = feedback
	}
	return nil
}

func (r *fakeApplicationRepo) UpdatePaymentStatus(_ context.Context, id uint, status models.PaymentStatus) error {
	a, ok := r.f.applications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.PaymentStatus = status
	return nil
}

// ===== REVIEW =====

type fakeReviewRepo struct{ f *fakeRepository }

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	review.ID = r.f.id()
	r.f.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id uint) (*models.Review, error) {
	rv, ok := r.f.reviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *models.Review) error {
	if _, ok := r.f.reviews[review.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.f.reviews[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.reviews, id)
	return nil
}

func (r *fakeReviewRepo) List(_ context.Context, _ repositories.ReviewFilters) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, rv := range r.f.reviews {
		out = append(out, rv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) GetByScholarship(_ context.Context, scholarshipID uint, _ repositories.ReviewFilters) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, rv := range r.f.reviews {
		if rv.ScholarshipID == scholarshipID {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) GetByUserEmail(_ context.Context, email string, _ repositories.ReviewFilters) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, rv := range r.f.reviews {
		if strings.EqualFold(rv.UserEmail, email) {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) AverageRating(_ context.Context, scholarshipID uint) (float64, error) {
	var sum float64
	var n int
	for _, rv := range r.f.reviews {
		if rv.ScholarshipID == scholarshipID {
			sum += rv.RatingPoint
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// ===== PAYMENT =====

type fakePaymentRepo struct{ f *fakeRepository }

func (r *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	if _, ok := r.f.payments[p.TransactionID]; ok {
		return repositories.ErrDuplicateKey
	}
	p.ID = r.f.id()
	copied := *p
	r.f.payments[p.TransactionID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	p, ok := r.f.payments[transactionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) GetByApplicationID(_ context.Context, applicationID uint) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.f.payments {
		if p.ApplicationID == applicationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(_ context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	var out []*models.Payment
	for _, p := range r.f.payments {
		if filters.Email == "" || strings.EqualFold(p.Email, filters.Email) {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

// ===== ANALYTICS =====

type fakeAnalyticsRepo struct{ f *fakeRepository }

func (r *fakeAnalyticsRepo) GetPlatformStats(_ context.Context) (*repositories.PlatformStats, error) {
	stats := &repositories.PlatformStats{
		TotalUsers:        int64(len(r.f.users)),
		TotalScholarships: int64(len(r.f.scholarships)),
		TotalApplications: int64(len(r.f.applications)),
		TotalReviews:      int64(len(r.f.reviews)),
	}
	for _, p := range r.f.payments {
		stats.TotalRevenue += p.Amount
	}
	return stats, nil
}

func (r *fakeAnalyticsRepo) GetApplicationsByCategory(_ context.Context) ([]repositories.CategoryCount, error) {
	byCategory := make(map[models.ScholarshipCategory]*repositories.CategoryCount)
	for _, a := range r.f.applications {
		c, ok := byCategory[a.ScholarshipCategory]
		if !ok {
			c = &repositories.CategoryCount{Category: a.ScholarshipCategory}
			byCategory[a.ScholarshipCategory] = c
		}
		c.Count++
		c.Fees += a.ApplicationFees
	}
	var out []repositories.CategoryCount
	for _, c := range byCategory {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) GetApplicationsByStatus(_ context.Context) ([]repositories.StatusCount, error) {
	byStatus := make(map[models.ApplicationStatus]int64)
	for _, a := range r.f.applications {
		byStatus[a.ApplicationStatus]++
	}
	var out []repositories.StatusCount
	for status, count := range byStatus {
		out = append(out, repositories.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) GetStudentStats(_ context.Context, email string) (*repositories.StudentStats, error) {
	stats := &repositories.StudentStats{}
	for _, a := range r.f.applications {
		if strings.EqualFold(a.UserEmail, email) {
			stats.TotalApplications++
		}
	}
	for _, rv := range r.f.reviews {
		if strings.EqualFold(rv.UserEmail, email) {
			stats.TotalReviews++
		}
	}
	for _, p := range r.f.payments {
		if strings.EqualFold(p.Email, email) {
			stats.TotalPaid += p.Amount
		}
	}
	return stats, nil
}

func (r *fakeAnalyticsRepo) GetModeratorStats(_ context.Context) (*repositories.ModeratorStats, error) {
	stats := &repositories.ModeratorStats{TotalReviews: int64(len(r.f.reviews))}
	for _, a := range r.f.applications {
		switch a.ApplicationStatus {
		case models.ApplicationPending:
			stats.PendingApplications++
		case models.ApplicationProcessing:
			stats.ProcessingApplications++
		}
	}
	return stats, nil
}

func (r *fakeAnalyticsRepo) GetTopUniversities(_ context.Context, limit int) ([]repositories.UniversityCount, error) {
	byUniversity := make(map[string]int64)
	for _, a := range r.f.applications {
		byUniversity[a.UniversityName]++
	}
	var out []repositories.UniversityCount
	for name, count := range byUniversity {
		if len(out) == limit {
			break
		}
		out = append(out, repositories.UniversityCount{UniversityName: name, Applications: count})
	}
	return out, nil
}

// testLogger discards output; tests assert behavior, not log lines.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultApplicationFilters() repositories.ApplicationFilters {
	return repositories.ApplicationFilters{Limit: 20}
}
