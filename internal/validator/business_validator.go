package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateStatusTransition validates application status transitions.
// The table is the single source of truth; services never hand-check
// statuses themselves.
func (bv *BusinessValidator) ValidateStatusTransition(current, next models.ApplicationStatus) ValidationErrors {
	var errors ValidationErrors

	allowedTransitions := map[models.ApplicationStatus][]models.ApplicationStatus{
		models.ApplicationPending:    {models.ApplicationProcessing, models.ApplicationCompleted, models.ApplicationRejected},
		models.ApplicationProcessing: {models.ApplicationCompleted, models.ApplicationRejected},
		models.ApplicationCompleted:  {}, // terminal
		models.ApplicationRejected:   {}, // terminal
	}

	allowed := false
	for _, next2 := range allowedTransitions[current] {
		if next == next2 {
			allowed = true
			break
		}
	}

	if !allowed {
		errors = append(errors, ValidationError{
			Field:   "application_status",
			Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
			Value:   next,
			Rule:    "status_transition",
		})
	}

	return errors
}

// ValidateOwnerEdit validates an applicant's edit of their own application.
// Non-payment fields are frozen once the application leaves pending; a
// payment status update is allowed regardless of current status.
func (bv *BusinessValidator) ValidateOwnerEdit(req *ApplicationUpdateRequest, current models.ApplicationStatus) ValidationErrors {
	var errors ValidationErrors

	if req.HasNonPaymentFields() && current != models.ApplicationPending {
		errors = append(errors, ValidationError{
			Field:   "application_status",
			Message: fmt.Sprintf("application can only be edited while pending, current status is %s", current),
			Value:   current,
			Rule:    "status_transition",
		})
	}

	return errors
}

// ValidateOwnerDelete validates an applicant's deletion of their own
// application. Only pending applications are deletable.
func (bv *BusinessValidator) ValidateOwnerDelete(current models.ApplicationStatus) ValidationErrors {
	var errors ValidationErrors

	if current != models.ApplicationPending {
		errors = append(errors, ValidationError{
			Field:   "application_status",
			Message: fmt.Sprintf("application can only be deleted while pending, current status is %s", current),
			Value:   current,
			Rule:    "status_transition",
		})
	}

	return errors
}

// ValidateApplicationDeadline checks that a scholarship is still open.
func (bv *BusinessValidator) ValidateApplicationDeadline(deadline time.Time) ValidationErrors {
	var errors ValidationErrors

	if time.Now().After(deadline) {
		errors = append(errors, ValidationError{
			Field:   "application_deadline",
			Message: "scholarship application deadline has passed",
			Value:   deadline,
			Rule:    "business_logic",
		})
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	// Rating points (1-5, half points allowed)
	bv.validate.RegisterValidation("rating_point", func(fl validator.FieldLevel) bool {
		rating := fl.Field().Float()
		return rating >= 1 && rating <= 5
	})

	// Fees must not be negative
	bv.validate.RegisterValidation("fee_amount", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() >= 0
	})
}
