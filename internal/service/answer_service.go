package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/config"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AnswerService records one answer per (attempt, question). A
// resubmission overwrites the previous row instead of creating a
// duplicate, and the attempt's aggregate counters are updated in the
// same transaction as the answer write.
type AnswerService interface {
	SubmitAnswer(attemptUUID uuid.UUID, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type answerService struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAnswerService(cfg *config.Config, db *gorm.DB) AnswerService {
	return &answerService{cfg: cfg, db: db}
}

func (s *answerService) SubmitAnswer(attemptUUID uuid.UUID, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	var resp dto.SubmitAnswerResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.ApplicantExam
		if err := lockForUpdate(tx).Where("uuid = ?", attemptUUID).First(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("attempt %s: %w", attemptUUID, apperr.ErrNotFound)
			}
			return err
		}
		if err := attempt.Status.CanRecordAnswer(); err != nil {
			return err
		}

		var question model.Question
		err := tx.Preload("Choices").Where("uuid = ?", req.QuestionUUID).First(&question).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("question %s: %w", req.QuestionUUID, apperr.ErrNotFound)
			}
			return err
		}
		if question.ExamID != attempt.ExamID {
			return fmt.Errorf("question %s is not part of this exam: %w", req.QuestionUUID, apperr.ErrNotFound)
		}

		choice, err := resolveChoice(&question, req.ChoiceUUID)
		if err != nil {
			return err
		}

		isCorrect := choice != nil && choice.IsCorrect
		suspected := req.TabSwitchCount > s.cfg.Proctoring.MaxTabSwitches ||
			req.TimeSpentSeconds > s.cfg.Proctoring.MaxAnswerSeconds

		var prior model.ApplicantAnswer
		attemptedDelta := 0
		correctDelta := 0
		err = tx.Where("applicant_exam_id = ? AND question_id = ?", attempt.ID, question.ID).
			First(&prior).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			attemptedDelta = 1
			if isCorrect {
				correctDelta = 1
			}
			answer := model.ApplicantAnswer{
				ApplicantExamID:  attempt.ID,
				QuestionID:       question.ID,
				IsCorrect:        isCorrect,
				AnsweredAt:       time.Now(),
				TimeSpentSeconds: req.TimeSpentSeconds,
				TabSwitchCount:   req.TabSwitchCount,
				SuspectedFlag:    suspected,
			}
			if choice != nil {
				answer.SelectedChoiceID = &choice.ID
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// Re-answering the same question: overwrite, leave
			// attempted_questions alone, adjust correct_answers by the
			// correctness delta in either direction.
			if isCorrect && !prior.IsCorrect {
				correctDelta = 1
			} else if !isCorrect && prior.IsCorrect {
				correctDelta = -1
			}
			prior.IsCorrect = isCorrect
			prior.AnsweredAt = time.Now()
			prior.TimeSpentSeconds = req.TimeSpentSeconds
			prior.TabSwitchCount = req.TabSwitchCount
			prior.SuspectedFlag = suspected
			prior.MultipleSubmissionFlag = true
			prior.SelectedChoiceID = nil
			if choice != nil {
				prior.SelectedChoiceID = &choice.ID
			}
			if err := tx.Save(&prior).Error; err != nil {
				return err
			}
		}

		if attemptedDelta != 0 || correctDelta != 0 {
			updates := map[string]interface{}{
				"attempted_questions": gorm.Expr("attempted_questions + ?", attemptedDelta),
				"correct_answers":     gorm.Expr("correct_answers + ?", correctDelta),
			}
			if err := tx.Model(&model.ApplicantExam{}).Where("id = ?", attempt.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		resp = dto.SubmitAnswerResponse{
			IsCorrect:          isCorrect,
			AttemptedQuestions: attempt.AttemptedQuestions + attemptedDelta,
			TotalQuestions:     attempt.TotalQuestions,
			SuspectedFlag:      suspected,
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("attempt", attemptUUID.String()).Msg("SubmitAnswer rejected")
		return nil, err
	}
	return &resp, nil
}

// resolveChoice validates the submitted choice against the question
// type: choice questions require a choice belonging to the question,
// essay questions must not carry one.
func resolveChoice(question *model.Question, choiceUUID *uuid.UUID) (*model.Choice, error) {
	if !question.HasChoices() {
		if choiceUUID != nil {
			return nil, apperr.NewValidationError("choice_uuid", "essay questions do not take a choice")
		}
		return nil, nil
	}
	if choiceUUID == nil {
		return nil, apperr.NewValidationError("choice_uuid", "a choice is required for this question")
	}
	for i := range question.Choices {
		if question.Choices[i].UUID == *choiceUUID {
			return &question.Choices[i], nil
		}
	}
	return nil, apperr.NewValidationError("choice_uuid", "choice does not belong to the question")
}
