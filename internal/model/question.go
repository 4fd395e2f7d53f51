package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeEssay     = "essay"
	QuestionTypeTrueFalse = "true_false"
)

// Question belongs to exactly one exam and is presented in creation
// order. Only mcq and true_false questions carry choices.
type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UUID         uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	ExamID       uint           `json:"exam_id" gorm:"not null;index"`
	Text         string         `json:"text" gorm:"type:text;not null"`
	QuestionType string         `json:"question_type" gorm:"size:20;not null;default:'mcq'"`
	Choices      []Choice       `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasChoices reports whether the question type is answered by picking a
// choice rather than writing free text.
func (q *Question) HasChoices() bool {
	return q.QuestionType == QuestionTypeMCQ || q.QuestionType == QuestionTypeTrueFalse
}

// CorrectChoice returns the choice marked correct, or nil. Authoring
// validation guarantees at most one per question.
func (q *Question) CorrectChoice() *Choice {
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == uuid.Nil {
		q.UUID = uuid.New()
	}
	return nil
}
