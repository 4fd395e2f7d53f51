package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptService owns the attempt lifecycle: applying to an exam and
// starting an attempt. Answer recording and completion live in their
// own services but every status transition goes through the state
// machine on model.AttemptStatus.
type AttemptService interface {
	Apply(req dto.ApplyExamRequest) (*dto.ApplyExamResponse, error)
	Start(attemptUUID uuid.UUID) (*dto.AttemptDetailDTO, error)
	Get(attemptUUID uuid.UUID) (*dto.AttemptDetailDTO, error)
}

type attemptService struct {
	attemptRepo repository.ApplicantExamRepository
	db          *gorm.DB
}

func NewAttemptService(attemptRepo repository.ApplicantExamRepository, db *gorm.DB) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, db: db}
}

// lockForUpdate takes a row lock on Postgres. SQLite (used by the test
// suite) has no FOR UPDATE; its single-writer transaction lock already
// serializes the capacity check.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Apply registers the applicant for an exam. The capacity check and the
// attempt creation run as one atomic unit under a lock on the exam row,
// so concurrent applies cannot overbook past MaxApplicants. An already
// open attempt for the same (applicant, exam) is returned as-is.
func (s *attemptService) Apply(req dto.ApplyExamRequest) (*dto.ApplyExamResponse, error) {
	var attempt model.ApplicantExam

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var applicant model.ApplicantProfile
		if err := tx.Where("uuid = ?", req.ApplicantUUID).First(&applicant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("applicant %s: %w", req.ApplicantUUID, apperr.ErrNotFound)
			}
			return err
		}

		var exam model.Exam
		if err := lockForUpdate(tx).Where("uuid = ?", req.ExamUUID).First(&exam).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("exam %s: %w", req.ExamUUID, apperr.ErrNotFound)
			}
			return err
		}

		if !exam.AcceptsAttempts(time.Now()) {
			return apperr.ErrExamUnavailable
		}
		if exam.AccessCode != "" && exam.AccessCode != req.AccessCode {
			// Reported the same as an unavailable exam so the access
			// code cannot be probed.
			return apperr.ErrExamUnavailable
		}

		var open model.ApplicantExam
		err := tx.Where("applicant_id = ? AND exam_id = ? AND status IN ?",
			applicant.ID, exam.ID,
			[]model.AttemptStatus{model.AttemptNotStarted, model.AttemptInProgress}).
			Order("created_at DESC").
			First(&open).Error
		if err == nil {
			attempt = open
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var examCount int64
		if err := tx.Model(&model.ApplicantExam{}).Where("exam_id = ?", exam.ID).Count(&examCount).Error; err != nil {
			return err
		}
		if examCount >= int64(exam.MaxApplicants) {
			return apperr.ErrCapacityExceeded
		}

		var priorCount int64
		if err := tx.Model(&model.ApplicantExam{}).
			Where("applicant_id = ? AND exam_id = ?", applicant.ID, exam.ID).
			Count(&priorCount).Error; err != nil {
			return err
		}
		if priorCount >= int64(exam.MaxAttempts) {
			return apperr.ErrAttemptLimitExceeded
		}

		var questionCount int64
		if err := tx.Model(&model.Question{}).Where("exam_id = ?", exam.ID).Count(&questionCount).Error; err != nil {
			return err
		}

		attempt = model.ApplicantExam{
			ApplicantID:       applicant.ID,
			ExamID:            exam.ID,
			Status:            model.AttemptNotStarted,
			TotalQuestions:    int(questionCount),
			ExamAttemptNumber: int(priorCount) + 1,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		log.Warn().Err(err).Str("exam", req.ExamUUID.String()).Msg("Apply rejected")
		return nil, err
	}

	log.Info().Str("attempt", attempt.UUID.String()).Int("attempt_number", attempt.ExamAttemptNumber).Msg("Applicant applied to exam")
	return &dto.ApplyExamResponse{
		UUID:              attempt.UUID,
		Status:            string(attempt.Status),
		ExamAttemptNumber: attempt.ExamAttemptNumber,
	}, nil
}

// Start flips a not_started attempt to in_progress and stamps
// started_at. Calling it on an attempt that is already running is a
// no-op; a completed attempt fails with ErrInvalidState.
func (s *attemptService) Start(attemptUUID uuid.UUID) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.findAttempt(attemptUUID)
	if err != nil {
		return nil, err
	}
	if err := attempt.Status.CanStart(); err != nil {
		return nil, err
	}

	if attempt.Status == model.AttemptNotStarted {
		now := time.Now()
		res := s.db.Model(&model.ApplicantExam{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptNotStarted).
			Updates(map[string]interface{}{
				"status":     model.AttemptInProgress,
				"started_at": now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race; re-read and let the state machine decide.
			attempt, err = s.findAttempt(attemptUUID)
			if err != nil {
				return nil, err
			}
			if err := attempt.Status.CanStart(); err != nil {
				return nil, err
			}
		}
	}

	detail, err := s.attemptRepo.FindByUUIDWithDetails(attemptUUID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("attempt", attemptUUID.String()).Msg("Attempt started")
	return buildAttemptDetail(detail), nil
}

// Get returns the read-only attempt view: exam details, ordered
// questions with choices (correctness withheld), and progress.
func (s *attemptService) Get(attemptUUID uuid.UUID) (*dto.AttemptDetailDTO, error) {
	detail, err := s.attemptRepo.FindByUUIDWithDetails(attemptUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return buildAttemptDetail(detail), nil
}

func (s *attemptService) findAttempt(attemptUUID uuid.UUID) (*model.ApplicantExam, error) {
	attempt, err := s.attemptRepo.FindByUUID(attemptUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return attempt, nil
}

func buildAttemptDetail(attempt *model.ApplicantExam) *dto.AttemptDetailDTO {
	var examSummary dto.ExamSummaryDTO
	copier.Copy(&examSummary, &attempt.Exam)

	questions := make([]dto.QuestionDTO, len(attempt.Exam.Questions))
	for i := range attempt.Exam.Questions {
		q := &attempt.Exam.Questions[i]
		var qDTO dto.QuestionDTO
		copier.Copy(&qDTO, q)
		qDTO.Choices = make([]dto.ChoiceDTO, len(q.Choices))
		for j := range q.Choices {
			copier.Copy(&qDTO.Choices[j], &q.Choices[j])
		}
		questions[i] = qDTO
	}

	return &dto.AttemptDetailDTO{
		UUID:               attempt.UUID,
		Status:             string(attempt.Status),
		Exam:               examSummary,
		Questions:          questions,
		StartedAt:          attempt.StartedAt,
		CompletedAt:        attempt.CompletedAt,
		TotalQuestions:     attempt.TotalQuestions,
		AttemptedQuestions: attempt.AttemptedQuestions,
		ExamAttemptNumber:  attempt.ExamAttemptNumber,
	}
}
