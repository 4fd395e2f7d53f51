package dto

import (
	"time"

	"github.com/google/uuid"
)

// ApplyExamResponse is returned from Apply. StatusCode carries the
// attempt lifecycle state as a string.
type ApplyExamResponse struct {
	UUID              uuid.UUID `json:"uuid"`
	Status            string    `json:"status"`
	ExamAttemptNumber int       `json:"exam_attempt_number"`
}

// AttemptDetailDTO is the full applicant-facing view of an attempt:
// the exam, its ordered questions (correctness withheld), and progress.
type AttemptDetailDTO struct {
	UUID               uuid.UUID      `json:"uuid"`
	Status             string         `json:"status"`
	Exam               ExamSummaryDTO `json:"exam"`
	Questions          []QuestionDTO  `json:"questions"`
	StartedAt          *time.Time     `json:"started_at,omitempty"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
	TotalQuestions     int            `json:"total_questions"`
	AttemptedQuestions int            `json:"attempted_questions"`
	ExamAttemptNumber  int            `json:"exam_attempt_number"`
}

type SubmitAnswerResponse struct {
	IsCorrect          bool `json:"is_correct"`
	AttemptedQuestions int  `json:"attempted_questions"`
	TotalQuestions     int  `json:"total_questions"`
	SuspectedFlag      bool `json:"suspected_flag"`
}

type CompleteExamResponse struct {
	UUID                uuid.UUID  `json:"uuid"`
	Status              string     `json:"status"`
	TotalQuestions      int        `json:"total_questions"`
	AttemptedQuestions  int        `json:"attempted_questions"`
	CorrectAnswers      int        `json:"correct_answers"`
	RecommendationScore float64    `json:"recommendation_score"`
	Accuracy            float64    `json:"accuracy"`
	RecommendedCourse   *CourseDTO `json:"recommended_course"`
	CompletedAt         time.Time  `json:"completed_at"`
}

// AttemptHistoryDTO is one row of an applicant's exam history.
type AttemptHistoryDTO struct {
	UUID                uuid.UUID  `json:"uuid"`
	ExamTitle           string     `json:"exam_title"`
	ExamDate            time.Time  `json:"exam_date"`
	Status              string     `json:"status"`
	ExamAttemptNumber   int        `json:"exam_attempt_number"`
	TotalQuestions      int        `json:"total_questions"`
	AttemptedQuestions  int        `json:"attempted_questions"`
	CorrectAnswers      int        `json:"correct_answers"`
	RecommendationScore *float64   `json:"recommendation_score,omitempty"`
	Accuracy            *float64   `json:"accuracy,omitempty"`
	RecommendedCourse   *CourseDTO `json:"recommended_course,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}
