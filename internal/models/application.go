package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending    ApplicationStatus = "pending"
	ApplicationProcessing ApplicationStatus = "processing"
	ApplicationCompleted  ApplicationStatus = "completed"
	ApplicationRejected   ApplicationStatus = "rejected"
)

// IsTerminal reports whether the status admits no further status changes.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationCompleted || s == ApplicationRejected
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Application struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ScholarshipID uint         `json:"scholarship_id" gorm:"not null;index"`
	Scholarship   *Scholarship `json:"scholarship,omitempty" gorm:"foreignKey:ScholarshipID"`

	UserEmail string `json:"user_email" gorm:"not null;size:255;index"`
	UserName  string `json:"user_name" gorm:"size:100"`

	// Denormalized from the scholarship at apply time so listings and the
	// payment flow do not need a join.
	ScholarshipName     string              `json:"scholarship_name" gorm:"size:255"`
	UniversityName      string              `json:"university_name" gorm:"size:255"`
	SubjectCategory     string              `json:"subject_category" gorm:"size:100"`
	ScholarshipCategory ScholarshipCategory `json:"scholarship_category" gorm:"size:20"`
	Degree              Degree              `json:"degree" gorm:"size:20"`
	ApplicationFees     float64             `json:"application_fees"`
	ServiceCharge       float64             `json:"service_charge"`

	ApplicationStatus ApplicationStatus `json:"application_status" gorm:"not null;size:20;default:pending;index"`
	PaymentStatus     PaymentStatus     `json:"payment_status" gorm:"not null;size:10;default:unpaid"`
	Feedback          *string           `json:"feedback" gorm:"type:text"`

	AppliedAt time.Time `json:"applied_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Application) TableName() string {
	return "applications"
}
