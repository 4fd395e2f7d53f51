package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicantProfile is the profile side of an applicant account.
// Authentication lives outside this service; only the profile fields the
// exam workflow reads and writes are modeled here. CourseAppliedID is
// overwritten by the recommendation engine each time an attempt
// completes (last completed exam wins).
type ApplicantProfile struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UUID            uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	FirstName       string         `json:"first_name" gorm:"size:100;not null"`
	LastName        string         `json:"last_name" gorm:"size:100;not null"`
	Email           string         `json:"email" gorm:"size:255;not null;uniqueIndex"`
	CourseAppliedID *uint          `json:"course_applied_id,omitempty"`
	CourseApplied   *Course        `json:"course_applied,omitempty" gorm:"foreignKey:CourseAppliedID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *ApplicantProfile) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}
