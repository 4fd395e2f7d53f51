package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"gorm.io/gorm"
)

// AttemptStatus is the lifecycle state of an ApplicantExam. The only
// legal transitions are not_started → in_progress → completed.
type AttemptStatus string

const (
	AttemptNotStarted AttemptStatus = "not_started"
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// CanStart validates the not_started → in_progress transition.
// Starting an already running attempt is an idempotent no-op for the
// caller, so it is allowed here; completed attempts are terminal.
func (s AttemptStatus) CanStart() error {
	switch s {
	case AttemptNotStarted, AttemptInProgress:
		return nil
	default:
		return apperr.ErrInvalidState
	}
}

// CanRecordAnswer validates that answers may be written.
func (s AttemptStatus) CanRecordAnswer() error {
	if s != AttemptInProgress {
		return apperr.ErrExamNotInProgress
	}
	return nil
}

// CanComplete validates the in_progress → completed transition.
func (s AttemptStatus) CanComplete() error {
	if s != AttemptInProgress {
		return apperr.ErrExamNotInProgress
	}
	return nil
}

// Open reports whether the attempt still accepts activity.
func (s AttemptStatus) Open() bool {
	return s == AttemptNotStarted || s == AttemptInProgress
}

// ApplicantExam is one applicant's attempt at one exam. Counters are
// maintained by the answer recorder while in_progress and frozen once
// the recommendation engine completes the attempt.
type ApplicantExam struct {
	ID                  uint              `gorm:"primarykey" json:"id"`
	UUID                uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	ApplicantID         uint              `json:"applicant_id" gorm:"not null;index"`
	Applicant           ApplicantProfile  `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE"`
	ExamID              uint              `json:"exam_id" gorm:"not null;index"`
	Exam                Exam              `json:"exam,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	Status              AttemptStatus     `json:"status" gorm:"size:20;not null;default:'not_started';index"`
	StartedAt           *time.Time        `json:"started_at,omitempty"`
	CompletedAt         *time.Time        `json:"completed_at,omitempty"`
	TotalQuestions      int               `json:"total_questions" gorm:"not null;default:0"`
	AttemptedQuestions  int               `json:"attempted_questions" gorm:"not null;default:0"`
	CorrectAnswers      int               `json:"correct_answers" gorm:"not null;default:0"`
	Score               *float64          `json:"score,omitempty"`
	RecommendationScore *float64          `json:"recommendation_score,omitempty"`
	Accuracy            *float64          `json:"accuracy,omitempty"`
	RecommendedCourseID *uint             `json:"recommended_course_id,omitempty"`
	RecommendedCourse   *Course           `json:"recommended_course,omitempty" gorm:"foreignKey:RecommendedCourseID"`
	ExamAttemptNumber   int               `json:"exam_attempt_number" gorm:"not null;default:1"`
	Answers             []ApplicantAnswer `json:"answers,omitempty" gorm:"foreignKey:ApplicantExamID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	DeletedAt           gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (a *ApplicantExam) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AttemptNotStarted
	}
	return nil
}
