package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicantAnswer records one applicant's choice for one question of an
// attempt. Resubmission updates the row in place; the unique index on
// (applicant_exam_id, question_id) makes duplicates impossible. If the
// selected choice is later deleted the reference nulls out rather than
// cascading away the answer.
type ApplicantAnswer struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	UUID                   uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	ApplicantExamID        uint           `json:"applicant_exam_id" gorm:"not null;index:idx_attempt_question,unique"`
	QuestionID             uint           `json:"question_id" gorm:"not null;index:idx_attempt_question,unique"`
	Question               Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	SelectedChoiceID       *uint          `json:"selected_choice_id,omitempty"`
	SelectedChoice         *Choice        `json:"selected_choice,omitempty" gorm:"foreignKey:SelectedChoiceID;constraint:OnDelete:SET NULL"`
	IsCorrect              bool           `json:"is_correct" gorm:"default:false"`
	AnsweredAt             time.Time      `json:"answered_at"`
	TimeSpentSeconds       int            `json:"time_spent_seconds" gorm:"default:0"`
	TabSwitchCount         int            `json:"tab_switch_count" gorm:"default:0"`
	SuspectedFlag          bool           `json:"suspected_flag" gorm:"default:false"`
	MultipleSubmissionFlag bool           `json:"multiple_submission_flag" gorm:"default:false"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *ApplicantAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}
