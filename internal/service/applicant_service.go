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
)

const recentScoresLimit = 5

// ApplicantService is the read-only dashboard surface: exam history,
// recent scores, and the list of exams still open for application.
type ApplicantService interface {
	ListHistory(applicantUUID uuid.UUID) ([]dto.AttemptHistoryDTO, error)
	RecentScores(applicantUUID uuid.UUID) ([]dto.AttemptHistoryDTO, error)
	UpcomingExams() ([]dto.UpcomingExamDTO, error)
}

type applicantService struct {
	applicantRepo repository.ApplicantRepository
	attemptRepo   repository.ApplicantExamRepository
	examRepo      repository.ExamRepository
}

func NewApplicantService(
	applicantRepo repository.ApplicantRepository,
	attemptRepo repository.ApplicantExamRepository,
	examRepo repository.ExamRepository,
) ApplicantService {
	return &applicantService{
		applicantRepo: applicantRepo,
		attemptRepo:   attemptRepo,
		examRepo:      examRepo,
	}
}

func (s *applicantService) ListHistory(applicantUUID uuid.UUID) ([]dto.AttemptHistoryDTO, error) {
	applicant, err := s.findApplicant(applicantUUID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindAllByApplicant(applicant.ID)
	if err != nil {
		log.Error().Err(err).Str("applicant", applicantUUID.String()).Msg("Failed to list attempt history")
		return nil, err
	}
	return buildHistory(attempts), nil
}

func (s *applicantService) RecentScores(applicantUUID uuid.UUID) ([]dto.AttemptHistoryDTO, error) {
	applicant, err := s.findApplicant(applicantUUID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindRecentCompleted(applicant.ID, recentScoresLimit)
	if err != nil {
		return nil, err
	}
	return buildHistory(attempts), nil
}

// UpcomingExams lists exams still open today with their remaining
// seats. Exams already at capacity are omitted.
func (s *applicantService) UpcomingExams() ([]dto.UpcomingExamDTO, error) {
	exams, err := s.examRepo.FindUpcoming(time.Now())
	if err != nil {
		return nil, err
	}

	out := make([]dto.UpcomingExamDTO, 0, len(exams))
	for i := range exams {
		count, err := s.attemptRepo.CountByExam(exams[i].ID)
		if err != nil {
			return nil, err
		}
		remaining := exams[i].MaxApplicants - int(count)
		if remaining <= 0 {
			continue
		}
		var item dto.UpcomingExamDTO
		copier.Copy(&item.ExamSummaryDTO, &exams[i])
		item.SeatsRemaining = remaining
		out = append(out, item)
	}
	return out, nil
}

func (s *applicantService) findApplicant(applicantUUID uuid.UUID) (*model.ApplicantProfile, error) {
	applicant, err := s.applicantRepo.FindByUUID(applicantUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("applicant %s: %w", applicantUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return applicant, nil
}

func buildHistory(attempts []model.ApplicantExam) []dto.AttemptHistoryDTO {
	out := make([]dto.AttemptHistoryDTO, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		item := dto.AttemptHistoryDTO{
			UUID:                a.UUID,
			ExamTitle:           a.Exam.Title,
			ExamDate:            a.Exam.Date,
			Status:              string(a.Status),
			ExamAttemptNumber:   a.ExamAttemptNumber,
			TotalQuestions:      a.TotalQuestions,
			AttemptedQuestions:  a.AttemptedQuestions,
			CorrectAnswers:      a.CorrectAnswers,
			RecommendationScore: a.RecommendationScore,
			Accuracy:            a.Accuracy,
			StartedAt:           a.StartedAt,
			CompletedAt:         a.CompletedAt,
			CreatedAt:           a.CreatedAt,
		}
		if a.RecommendedCourse != nil {
			item.RecommendedCourse = &dto.CourseDTO{
				UUID:     a.RecommendedCourse.UUID,
				Code:     a.RecommendedCourse.Code,
				Name:     a.RecommendedCourse.Name,
				MinScore: a.RecommendedCourse.MinScore,
			}
		}
		out[i] = item
	}
	return out
}
