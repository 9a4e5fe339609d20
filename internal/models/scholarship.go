package models

import (
	"time"

	"gorm.io/gorm"
)

type ScholarshipCategory string

const (
	CategoryFullFund ScholarshipCategory = "Full fund"
	CategoryPartial  ScholarshipCategory = "Partial"
	CategorySelfFund ScholarshipCategory = "Self-fund"
)

type Degree string

const (
	DegreeDiploma  Degree = "Diploma"
	DegreeBachelor Degree = "Bachelor"
	DegreeMasters  Degree = "Masters"
)

type Scholarship struct {
	ID                  uint                `json:"id" gorm:"primaryKey"`
	ScholarshipName     string              `json:"scholarship_name" gorm:"not null;size:255;index"`
	UniversityName      string              `json:"university_name" gorm:"not null;size:255;index"`
	UniversityImage     string              `json:"university_image" gorm:"size:500"`
	UniversityCountry   string              `json:"university_country" gorm:"not null;size:100;index"`
	UniversityCity      string              `json:"university_city" gorm:"size:100"`
	UniversityWorldRank int                 `json:"university_world_rank"`
	SubjectCategory     string              `json:"subject_category" gorm:"size:100;index"`
	ScholarshipCategory ScholarshipCategory `json:"scholarship_category" gorm:"not null;size:20;index"`
	Degree              Degree              `json:"degree" gorm:"not null;size:20"`

	TuitionFees     *float64 `json:"tuition_fees"`
	ApplicationFees float64  `json:"application_fees" gorm:"not null"`
	ServiceCharge   float64  `json:"service_charge" gorm:"not null"`

	ApplicationDeadline time.Time `json:"application_deadline" gorm:"not null"`
	PostDate            time.Time `json:"post_date"`
	PostedUserEmail     string    `json:"posted_user_email" gorm:"size:255"`

	Description string `json:"description" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}
