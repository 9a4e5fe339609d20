package validator

import (
	"time"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

// ===== SCHOLARSHIP REQUESTS =====

type ScholarshipCreateRequest struct {
	ScholarshipName     string  `json:"scholarship_name" validate:"required,max=255"`
	UniversityName      string  `json:"university_name" validate:"required,max=255"`
	UniversityImage     string  `json:"university_image" validate:"omitempty,url,max=500"`
	UniversityCountry   string  `json:"university_country" validate:"required,max=100"`
	UniversityCity      string  `json:"university_city" validate:"omitempty,max=100"`
	UniversityWorldRank int     `json:"university_world_rank" validate:"omitempty,min=1"`
	SubjectCategory     string  `json:"subject_category" validate:"omitempty,max=100"`
	ScholarshipCategory string  `json:"scholarship_category" validate:"required,oneof='Full fund' Partial Self-fund"`
	Degree              string  `json:"degree" validate:"required,oneof=Diploma Bachelor Masters"`
	TuitionFees         *float64 `json:"tuition_fees" validate:"omitempty,gte=0"`
	ApplicationFees     float64 `json:"application_fees" validate:"required,gte=0"`
	ServiceCharge       float64 `json:"service_charge" validate:"gte=0"`
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
	Description         string  `json:"description" validate:"omitempty,max=5000"`
}

type ScholarshipUpdateRequest struct {
	ScholarshipName     *string    `json:"scholarship_name" validate:"omitempty,max=255"`
	UniversityName      *string    `json:"university_name" validate:"omitempty,max=255"`
	UniversityImage     *string    `json:"university_image" validate:"omitempty,url,max=500"`
	UniversityCountry   *string    `json:"university_country" validate:"omitempty,max=100"`
	UniversityCity      *string    `json:"university_city" validate:"omitempty,max=100"`
	UniversityWorldRank *int       `json:"university_world_rank" validate:"omitempty,min=1"`
	SubjectCategory     *string    `json:"subject_category" validate:"omitempty,max=100"`
	ScholarshipCategory *string    `json:"scholarship_category" validate:"omitempty,oneof='Full fund' Partial Self-fund"`
	Degree              *string    `json:"degree" validate:"omitempty,oneof=Diploma Bachelor Masters"`
	TuitionFees         *float64   `json:"tuition_fees" validate:"omitempty,gte=0"`
	ApplicationFees     *float64   `json:"application_fees" validate:"omitempty,gte=0"`
	ServiceCharge       *float64   `json:"service_charge" validate:"omitempty,gte=0"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Description         *string    `json:"description" validate:"omitempty,max=5000"`
}

// ===== APPLICATION REQUESTS =====

type ApplicationCreateRequest struct {
	ScholarshipID uint   `json:"scholarship_id" validate:"required"`
	UserName      string `json:"user_name" validate:"omitempty,max=100"`
}

// ApplicationUpdateRequest is an owner edit. Only non-status fields may
// appear; status changes go through ApplicationStatusRequest.
type ApplicationUpdateRequest struct {
	UserName        *string `json:"user_name" validate:"omitempty,max=100"`
	SubjectCategory *string `json:"subject_category" validate:"omitempty,max=100"`
	Degree          *string `json:"degree" validate:"omitempty,oneof=Diploma Bachelor Masters"`

	// PaymentStatus is the one field an owner may flip after the
	// application leaves pending, and only to paid.
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=paid"`
}

// HasNonPaymentFields reports whether the edit touches anything besides
// payment status. Such edits are only allowed while pending.
func (r *ApplicationUpdateRequest) HasNonPaymentFields() bool {
	return r.UserName != nil || r.SubjectCategory != nil || r.Degree != nil
}

type ApplicationStatusRequest struct {
	Status   string  `json:"status" validate:"required,oneof=processing completed rejected"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}

// ===== REVIEW REQUESTS =====

type ReviewCreateRequest struct {
	ScholarshipID uint    `json:"scholarship_id" validate:"required"`
	RatingPoint   float64 `json:"rating_point" validate:"required,gte=1,lte=5"`
	ReviewComment string  `json:"review_comment" validate:"required,max=2000"`
	UserImage     *string `json:"user_image" validate:"omitempty,url,max=500"`
}

type ReviewUpdateRequest struct {
	RatingPoint   *float64 `json:"rating_point" validate:"omitempty,gte=1,lte=5"`
	ReviewComment *string  `json:"review_comment" validate:"omitempty,max=2000"`
}

// ===== USER REQUESTS =====

type UserCreateRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url,max=500"`
}

type UserRoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=student moderator admin super-admin"`
}

// ===== PAYMENT REQUESTS =====

type CheckoutSessionRequest struct {
	ApplicationID uint   `json:"application_id" validate:"required"`
	SuccessURL    string `json:"success_url" validate:"required,url"`
	CancelURL     string `json:"cancel_url" validate:"required,url"`
}

type PaymentIntentRequest struct {
	ApplicationID uint `json:"application_id" validate:"required"`
}

type ConfirmPaymentRequest struct {
	SessionID     string `json:"session_id" validate:"required"`
	ApplicationID uint   `json:"application_id" validate:"required"`
}

// ToDegree converts an already-validated degree string.
func ToDegree(s string) models.Degree { return models.Degree(s) }

// ToScholarshipCategory converts an already-validated category string.
func ToScholarshipCategory(s string) models.ScholarshipCategory {
	return models.ScholarshipCategory(s)
}
