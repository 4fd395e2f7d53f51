package dto

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ChoiceDTO is the applicant-facing view of a choice. Correctness is
// deliberately absent; only admin DTOs reveal it.
type ChoiceDTO struct {
	UUID  uuid.UUID `json:"uuid"`
	Label string    `json:"label"`
	Text  string    `json:"text"`
}

type QuestionDTO struct {
	UUID         uuid.UUID   `json:"uuid"`
	Text         string      `json:"text"`
	QuestionType string      `json:"question_type"`
	Choices      []ChoiceDTO `json:"choices,omitempty"`
}

type ExamSummaryDTO struct {
	UUID            uuid.UUID `json:"uuid"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Date            time.Time `json:"date"`
	StartTime       *string   `json:"start_time,omitempty"`
	EndTime         *string   `json:"end_time,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	MaxAttempts     int       `json:"max_attempts"`
}

// UpcomingExamDTO lists an open exam together with its remaining seats.
type UpcomingExamDTO struct {
	ExamSummaryDTO
	SeatsRemaining int `json:"seats_remaining"`
}

type CourseDTO struct {
	UUID     uuid.UUID `json:"uuid"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	MinScore float64   `json:"min_score"`
}

type AdminUserDTO struct {
	UUID      uuid.UUID `json:"uuid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminChoiceDTO and AdminQuestionDTO expose correctness for the
// authoring and results screens.
type AdminChoiceDTO struct {
	UUID      uuid.UUID `json:"uuid"`
	Label     string    `json:"label"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
}

type AdminQuestionDTO struct {
	UUID         uuid.UUID        `json:"uuid"`
	Text         string           `json:"text"`
	QuestionType string           `json:"question_type"`
	Choices      []AdminChoiceDTO `json:"choices,omitempty"`
}

type AdminExamDTO struct {
	ExamSummaryDTO
	AccessCode    string             `json:"access_code,omitempty"`
	IsActive      bool               `json:"is_active"`
	IsExpired     bool               `json:"is_expired"`
	MaxApplicants int                `json:"max_applicants"`
	Questions     []AdminQuestionDTO `json:"questions,omitempty"`
}

// ExamResultDTO is one row of the per-exam results screen. The answer
// flag counts surface the proctoring heuristics for manual review.
type ExamResultDTO struct {
	AttemptUUID         uuid.UUID  `json:"attempt_uuid"`
	ApplicantName       string     `json:"applicant_name"`
	ApplicantEmail      string     `json:"applicant_email"`
	Status              string     `json:"status"`
	ExamAttemptNumber   int        `json:"exam_attempt_number"`
	TotalQuestions      int        `json:"total_questions"`
	AttemptedQuestions  int        `json:"attempted_questions"`
	CorrectAnswers      int        `json:"correct_answers"`
	RecommendationScore *float64   `json:"recommendation_score,omitempty"`
	RecommendedCourse   *CourseDTO `json:"recommended_course,omitempty"`
	SuspectedAnswers    int        `json:"suspected_answers"`
	ResubmittedAnswers  int        `json:"resubmitted_answers"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}
