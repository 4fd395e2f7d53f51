package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a program an applicant can be recommended into. MinScore is
// the lowest recommendation score that still qualifies for the course.
type Course struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UUID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Code      string         `json:"code" gorm:"size:10;not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	MinScore  float64        `json:"min_score" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}
