package validator

import (
	"testing"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

func TestValidateStatusTransition(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		current models.ApplicationStatus
		next    models.ApplicationStatus
		allowed bool
	}{
		{"pending to processing", models.ApplicationPending, models.ApplicationProcessing, true},
		{"pending to completed", models.ApplicationPending, models.ApplicationCompleted, true},
		{"pending to rejected", models.ApplicationPending, models.ApplicationRejected, true},
		{"processing to completed", models.ApplicationProcessing, models.ApplicationCompleted, true},
		{"processing to rejected", models.ApplicationProcessing, models.ApplicationRejected, true},
		{"processing back to pending", models.ApplicationProcessing, models.ApplicationPending, false},
		{"completed is terminal", models.ApplicationCompleted, models.ApplicationProcessing, false},
		{"completed to rejected", models.ApplicationCompleted, models.ApplicationRejected, false},
		{"rejected is terminal", models.ApplicationRejected, models.ApplicationCompleted, false},
		{"rejected to pending", models.ApplicationRejected, models.ApplicationPending, false},
		{"no self transition", models.ApplicationPending, models.ApplicationPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateStatusTransition(tt.current, tt.next)
			if tt.allowed && len(errs) > 0 {
				t.Errorf("expected %s -> %s to be allowed, got %v", tt.current, tt.next, errs)
			}
			if !tt.allowed && len(errs) == 0 {
				t.Errorf("expected %s -> %s to be rejected", tt.current, tt.next)
			}
		})
	}
}

func TestValidateOwnerEdit(t *testing.T) {
	bv := NewBusinessValidator()
	name := "New Name"
	paid := "paid"

	t.Run("field edit while pending allowed", func(t *testing.T) {
		req := &ApplicationUpdateRequest{UserName: &name}
		if errs := bv.ValidateOwnerEdit(req, models.ApplicationPending); len(errs) > 0 {
			t.Errorf("expected edit while pending to pass, got %v", errs)
		}
	})

	t.Run("field edit after pending rejected", func(t *testing.T) {
		req := &ApplicationUpdateRequest{UserName: &name}
		if errs := bv.ValidateOwnerEdit(req, models.ApplicationProcessing); len(errs) == 0 {
			t.Error("expected edit while processing to be rejected")
		}
	})

	t.Run("payment-only update allowed on any status", func(t *testing.T) {
		req := &ApplicationUpdateRequest{PaymentStatus: &paid}
		for _, status := range []models.ApplicationStatus{
			models.ApplicationPending,
			models.ApplicationProcessing,
			models.ApplicationCompleted,
			models.ApplicationRejected,
		} {
			if errs := bv.ValidateOwnerEdit(req, status); len(errs) > 0 {
				t.Errorf("payment-only update on %s should pass, got %v", status, errs)
			}
		}
	})

	t.Run("mixed edit after pending rejected", func(t *testing.T) {
		req := &ApplicationUpdateRequest{UserName: &name, PaymentStatus: &paid}
		if errs := bv.ValidateOwnerEdit(req, models.ApplicationCompleted); len(errs) == 0 {
			t.Error("expected mixed edit on completed application to be rejected")
		}
	})
}

func TestValidateOwnerDelete(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateOwnerDelete(models.ApplicationPending); len(errs) > 0 {
		t.Errorf("pending delete should pass, got %v", errs)
	}

	for _, status := range []models.ApplicationStatus{
		models.ApplicationProcessing,
		models.ApplicationCompleted,
		models.ApplicationRejected,
	} {
		if errs := bv.ValidateOwnerDelete(status); len(errs) == 0 {
			t.Errorf("delete on %s should be rejected", status)
		}
	}
}
