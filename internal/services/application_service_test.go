package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/events"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

var (
	studentActor   = Actor{Email: "alice@example.com", Name: "Alice", Role: models.RoleStudent}
	otherStudent   = Actor{Email: "bob@example.com", Name: "Bob", Role: models.RoleStudent}
	moderatorActor = Actor{Email: "mod@example.com", Name: "Mod", Role: models.RoleModerator}
	adminActor     = Actor{Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin}
)

func newApplicationFixture(t *testing.T) (*fakeRepository, *events.MockEventPublisher, ApplicationService) {
	t.Helper()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewApplicationService(repo, publisher, testLogger(), validator.New())
	return repo, publisher, svc
}

func seedScholarship(repo *fakeRepository, deadline time.Time) *models.Scholarship {
	s := &models.Scholarship{
		ScholarshipName:     "Global Excellence",
		UniversityName:      "Example University",
		UniversityCountry:   "USA",
		ScholarshipCategory: models.CategoryFullFund,
		Degree:              models.DegreeMasters,
		ApplicationFees:     100,
		ServiceCharge:       10,
		ApplicationDeadline: deadline,
	}
	_ = repo.Scholarship().Create(context.Background(), s)
	return s
}

func seedApplication(repo *fakeRepository, owner string, status models.ApplicationStatus) *models.Application {
	a := &models.Application{
		ScholarshipID:       1,
		UserEmail:           owner,
		UserName:            "Owner",
		ScholarshipName:     "Global Excellence",
		UniversityName:      "Example University",
		ScholarshipCategory: models.CategoryFullFund,
		Degree:              models.DegreeMasters,
		ApplicationFees:     100,
		ServiceCharge:       10,
		ApplicationStatus:   status,
		PaymentStatus:       models.PaymentUnpaid,
		AppliedAt:           time.Now(),
	}
	_ = repo.Application().Create(context.Background(), a)
	return a
}

func TestApplicationService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending application with denormalized fields", func(t *testing.T) {
		repo, publisher, svc := newApplicationFixture(t)
		scholarship := seedScholarship(repo, time.Now().Add(24*time.Hour))

		app, err := svc.Apply(ctx, &CreateApplicationRequest{ScholarshipID: scholarship.ID}, studentActor)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if app.ApplicationStatus != models.ApplicationPending {
			t.Errorf("status = %s, want pending", app.ApplicationStatus)
		}
		if app.PaymentStatus != models.PaymentUnpaid {
			t.Errorf("payment status = %s, want unpaid", app.PaymentStatus)
		}
		if app.ScholarshipName != scholarship.ScholarshipName {
			t.Errorf("scholarship name not denormalized: %q", app.ScholarshipName)
		}
		if app.UserEmail != "alice@example.com" {
			t.Errorf("user email = %q", app.UserEmail)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventApplicationSubmitted {
			t.Fatalf("expected one application.submitted event, got %v", published)
		}
		if published[0].Source != "scholarship-service" || published[0].Version != "1.0" {
			t.Errorf("bad envelope: source=%q version=%q", published[0].Source, published[0].Version)
		}
	})

	t.Run("rejects application past deadline", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		scholarship := seedScholarship(repo, time.Now().Add(-time.Hour))

		_, err := svc.Apply(ctx, &CreateApplicationRequest{ScholarshipID: scholarship.ID}, studentActor)
		if !errors.Is(err, ErrScholarshipClosed) {
			t.Errorf("Apply() error = %v, want ErrScholarshipClosed", err)
		}
	})

	t.Run("rejects unauthenticated subject", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		scholarship := seedScholarship(repo, time.Now().Add(24*time.Hour))

		_, err := svc.Apply(ctx, &CreateApplicationRequest{ScholarshipID: scholarship.ID}, Actor{Role: models.RoleStudent})
		if !errors.Is(err, authz.ErrUnauthenticated) {
			t.Errorf("Apply() error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("unknown scholarship is not found", func(t *testing.T) {
		_, _, svc := newApplicationFixture(t)

		_, err := svc.Apply(ctx, &CreateApplicationRequest{ScholarshipID: 42}, studentActor)
		if !errors.Is(err, ErrScholarshipNotFound) {
			t.Errorf("Apply() error = %v, want ErrScholarshipNotFound", err)
		}
	})
}

func TestApplicationService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newApplicationFixture(t)
	app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{"owner reads own", studentActor, nil},
		{"moderator reads any", moderatorActor, nil},
		{"stranger is forbidden", otherStudent, authz.ErrForbidden},
		{"case insensitive ownership", Actor{Email: "ALICE@Example.COM", Role: models.RoleStudent}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(ctx, app.ID, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moderator moves pending to processing", func(t *testing.T) {
		repo, publisher, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		updated, err := svc.UpdateStatus(ctx, app.ID, &UpdateApplicationStatusRequest{Status: "processing"}, moderatorActor)
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if updated.ApplicationStatus != models.ApplicationProcessing {
			t.Errorf("status = %s, want processing", updated.ApplicationStatus)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventApplicationStatusChanged {
			t.Fatalf("expected one status change event, got %v", published)
		}
	})

	t.Run("rejection carries feedback", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationProcessing)

		feedback := "incomplete transcripts"
		updated, err := svc.UpdateStatus(ctx, app.ID, &UpdateApplicationStatusRequest{Status: "rejected", Feedback: &feedback}, adminActor)
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if updated.Feedback == nil || *updated.Feedback != feedback {
			t.Errorf("feedback not persisted: %v", updated.Feedback)
		}
	})

	t.Run("student cannot change status", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		_, err := svc.UpdateStatus(ctx, app.ID, &UpdateApplicationStatusRequest{Status: "processing"}, studentActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("UpdateStatus() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("terminal status admits no transition", func(t *testing.T) {
		for _, terminal := range []models.ApplicationStatus{models.ApplicationCompleted, models.ApplicationRejected} {
			repo, _, svc := newApplicationFixture(t)
			app := seedApplication(repo, "alice@example.com", terminal)

			_, err := svc.UpdateStatus(ctx, app.ID, &UpdateApplicationStatusRequest{Status: "processing"}, moderatorActor)
			if !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("from %s: error = %v, want ErrInvalidStatusTransition", terminal, err)
			}
		}
	})

	t.Run("illegal transition does not silently pass", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationCompleted)

		// Re-asserting the current status must still fail loudly.
		_, err := svc.UpdateStatus(ctx, app.ID, &UpdateApplicationStatusRequest{Status: "completed"}, moderatorActor)
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("UpdateStatus() error = %v, want ErrInvalidStatusTransition", err)
		}

		stored, _ := repo.Application().GetByID(ctx, app.ID)
		if stored.ApplicationStatus != models.ApplicationCompleted {
			t.Errorf("stored status mutated to %s", stored.ApplicationStatus)
		}
	})
}

func TestApplicationService_Update(t *testing.T) {
	ctx := context.Background()
	name := "Alice A."
	paid := "paid"

	t.Run("owner edits while pending", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		updated, err := svc.Update(ctx, app.ID, &UpdateApplicationRequest{UserName: &name}, studentActor)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.UserName != name {
			t.Errorf("user name = %q, want %q", updated.UserName, name)
		}
	})

	t.Run("non-payment edit after pending is a conflict", func(t *testing.T) {
		for _, status := range []models.ApplicationStatus{models.ApplicationProcessing, models.ApplicationCompleted, models.ApplicationRejected} {
			repo, _, svc := newApplicationFixture(t)
			app := seedApplication(repo, "alice@example.com", status)

			_, err := svc.Update(ctx, app.ID, &UpdateApplicationRequest{UserName: &name}, studentActor)
			if !errors.Is(err, ErrApplicationNotEditable) {
				t.Errorf("status %s: error = %v, want ErrApplicationNotEditable", status, err)
			}
		}
	})

	t.Run("payment status flip allowed on any status", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationCompleted)

		updated, err := svc.Update(ctx, app.ID, &UpdateApplicationRequest{PaymentStatus: &paid}, studentActor)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.PaymentStatus != models.PaymentPaid {
			t.Errorf("payment status = %s, want paid", updated.PaymentStatus)
		}
	})

	t.Run("mixed edit on non-pending is rejected", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationProcessing)

		_, err := svc.Update(ctx, app.ID, &UpdateApplicationRequest{UserName: &name, PaymentStatus: &paid}, studentActor)
		if !errors.Is(err, ErrApplicationNotEditable) {
			t.Errorf("Update() error = %v, want ErrApplicationNotEditable", err)
		}
	})

	t.Run("moderator cannot edit someone else's application", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		_, err := svc.Update(ctx, app.ID, &UpdateApplicationRequest{UserName: &name}, moderatorActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("Update() error = %v, want ErrForbidden", err)
		}
	})
}

func TestApplicationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes pending application", func(t *testing.T) {
		repo, publisher, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		if err := svc.Delete(ctx, app.ID, studentActor); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Application().GetByID(ctx, app.ID); err == nil {
			t.Error("application still present after delete")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventApplicationDeleted {
			t.Fatalf("expected one deletion event, got %v", published)
		}
	})

	t.Run("non-pending application is not deletable", func(t *testing.T) {
		for _, status := range []models.ApplicationStatus{models.ApplicationProcessing, models.ApplicationCompleted, models.ApplicationRejected} {
			repo, _, svc := newApplicationFixture(t)
			app := seedApplication(repo, "alice@example.com", status)

			err := svc.Delete(ctx, app.ID, studentActor)
			if !errors.Is(err, ErrApplicationNotDeletable) {
				t.Errorf("status %s: error = %v, want ErrApplicationNotDeletable", status, err)
			}
		}
	})

	t.Run("admin cannot delete someone else's application", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		app := seedApplication(repo, "alice@example.com", models.ApplicationPending)

		err := svc.Delete(ctx, app.ID, adminActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("Delete() error = %v, want ErrForbidden", err)
		}
	})
}

func TestApplicationService_List(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newApplicationFixture(t)
	seedApplication(repo, "alice@example.com", models.ApplicationPending)
	seedApplication(repo, "bob@example.com", models.ApplicationProcessing)

	t.Run("moderator lists all", func(t *testing.T) {
		resp, err := svc.List(ctx, defaultApplicationFilters(), moderatorActor)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("total = %d, want 2", resp.Total)
		}
	})

	t.Run("student cannot list all", func(t *testing.T) {
		_, err := svc.List(ctx, defaultApplicationFilters(), studentActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("List() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("student lists own", func(t *testing.T) {
		resp, err := svc.GetByUser(ctx, "alice@example.com", defaultApplicationFilters(), studentActor)
		if err != nil {
			t.Fatalf("GetByUser() error = %v", err)
		}
		if resp.Total != 1 {
			t.Errorf("total = %d, want 1", resp.Total)
		}
	})

	t.Run("student cannot list another student's", func(t *testing.T) {
		_, err := svc.GetByUser(ctx, "bob@example.com", defaultApplicationFilters(), studentActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("GetByUser() error = %v, want ErrForbidden", err)
		}
	})
}
