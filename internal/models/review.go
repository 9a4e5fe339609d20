package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ScholarshipID uint         `json:"scholarship_id" gorm:"not null;index"`
	Scholarship   *Scholarship `json:"scholarship,omitempty" gorm:"foreignKey:ScholarshipID"`

	ScholarshipName string `json:"scholarship_name" gorm:"size:255"`
	UniversityName  string `json:"university_name" gorm:"size:255"`

	UserEmail string  `json:"user_email" gorm:"not null;size:255;index"`
	UserName  string  `json:"user_name" gorm:"size:100"`
	UserImage *string `json:"user_image" gorm:"size:500"`

	RatingPoint   float64   `json:"rating_point" gorm:"not null"`
	ReviewComment string    `json:"review_comment" gorm:"type:text"`
	ReviewDate    time.Time `json:"review_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Review) TableName() string {
	return "reviews"
}
