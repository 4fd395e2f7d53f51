package dto

import "github.com/google/uuid"

// ApplyExamRequest registers an applicant for an exam. The access code
// is required only for exams that were authored with one.
type ApplyExamRequest struct {
	ApplicantUUID uuid.UUID `json:"applicant_uuid" binding:"required"`
	ExamUUID      uuid.UUID `json:"exam_uuid" binding:"required"`
	AccessCode    string    `json:"access_code,omitempty"`
}

// SubmitAnswerRequest records (or re-records) the applicant's choice
// for one question. ChoiceUUID is omitted for essay questions.
type SubmitAnswerRequest struct {
	QuestionUUID     uuid.UUID  `json:"question_uuid" binding:"required"`
	ChoiceUUID       *uuid.UUID `json:"choice_uuid,omitempty"`
	TimeSpentSeconds int        `json:"time_spent_seconds" binding:"min=0"`
	TabSwitchCount   int        `json:"tab_switch_count" binding:"min=0"`
}
