package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Choice is one lettered option of a question. Labels are single
// uppercase letters, unique within their question.
type Choice struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UUID       uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	QuestionID uint           `json:"question_id" gorm:"not null;index:idx_question_label,unique"`
	Label      string         `json:"label" gorm:"size:1;not null;index:idx_question_label,unique"`
	Text       string         `json:"text" gorm:"size:255;not null"`
	IsCorrect  bool           `json:"is_correct" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidLabel reports whether label is a single uppercase letter A-Z.
func ValidLabel(label string) bool {
	return len(label) == 1 && label[0] >= 'A' && label[0] <= 'Z'
}

func (c *Choice) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}
