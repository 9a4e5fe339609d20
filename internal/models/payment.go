package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment is an immutable record of a confirmed provider charge.
// TransactionID carries a unique index so a duplicate webhook delivery
// cannot insert a second row for the same charge.
type Payment struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	TransactionID string `json:"transaction_id" gorm:"uniqueIndex;not null;size:255"`

	ApplicationID uint   `json:"application_id" gorm:"not null;index"`
	ScholarshipID uint   `json:"scholarship_id" gorm:"index"`
	Email         string `json:"email" gorm:"not null;size:255;index"`

	UniversityName string  `json:"university_name" gorm:"size:255"`
	Amount         float64 `json:"amount" gorm:"not null"`
	Currency       string  `json:"currency" gorm:"size:10;default:usd"`
	PaymentStatus  string  `json:"payment_status" gorm:"size:20"`

	// Raw provider payload kept for reconciliation.
	ProviderMetadata datatypes.JSON `json:"provider_metadata,omitempty"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
