package service

import (
	"errors"
	"fmt"
	"strings"
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

// AdminExamService covers exam authoring: nested question/choice
// creation, metadata updates, the expiry sweep, and the results screen.
type AdminExamService interface {
	CreateExam(req dto.ExamCreateDTO) (*dto.AdminExamDTO, error)
	UpdateExam(examUUID uuid.UUID, req dto.ExamUpdateDTO) (*dto.AdminExamDTO, error)
	DeleteExam(examUUID uuid.UUID) error
	GetExam(examUUID uuid.UUID) (*dto.AdminExamDTO, error)
	ListExams() ([]dto.AdminExamDTO, error)
	AddQuestion(examUUID uuid.UUID, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	DeleteQuestion(questionUUID uuid.UUID) error
	ExpireSweep() (int64, error)
	ListResults(examUUID uuid.UUID) ([]dto.ExamResultDTO, error)
}

type adminExamService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.ApplicantExamRepository
	answerRepo   repository.ApplicantAnswerRepository
}

func NewAdminExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.ApplicantExamRepository,
	answerRepo repository.ApplicantAnswerRepository,
) AdminExamService {
	return &adminExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
	}
}

const examDateLayout = "2006-01-02"

func (s *adminExamService) CreateExam(req dto.ExamCreateDTO) (*dto.AdminExamDTO, error) {
	date, err := time.Parse(examDateLayout, req.Date)
	if err != nil {
		return nil, apperr.NewValidationError("date", "must be YYYY-MM-DD")
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, qReq := range req.Questions {
		q, err := buildQuestion(qReq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, *q)
	}

	accessCode := req.AccessCode
	if accessCode == "" {
		accessCode = generateAccessCode()
	}

	exam := model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		AccessCode:      accessCode,
		MaxAttempts:     req.MaxAttempts,
		MaxApplicants:   req.MaxApplicants,
		Questions:       questions,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create exam")
		return nil, err
	}

	log.Info().Str("exam", exam.UUID.String()).Int("questions", len(questions)).Msg("Exam created")
	return buildAdminExamDTO(&exam), nil
}

func (s *adminExamService) UpdateExam(examUUID uuid.UUID, req dto.ExamUpdateDTO) (*dto.AdminExamDTO, error) {
	exam, err := s.findExam(examUUID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(examDateLayout, *req.Date)
		if err != nil {
			return nil, apperr.NewValidationError("date", "must be YYYY-MM-DD")
		}
		exam.Date = date
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if req.MaxAttempts != nil {
		exam.MaxAttempts = *req.MaxAttempts
	}
	if req.MaxApplicants != nil {
		exam.MaxApplicants = *req.MaxApplicants
	}

	if err := s.examRepo.Update(exam); err != nil {
		return nil, err
	}
	return buildAdminExamDTO(exam), nil
}

func (s *adminExamService) DeleteExam(examUUID uuid.UUID) error {
	if _, err := s.findExam(examUUID); err != nil {
		return err
	}
	return s.examRepo.Delete(examUUID)
}

func (s *adminExamService) GetExam(examUUID uuid.UUID) (*dto.AdminExamDTO, error) {
	exam, err := s.examRepo.FindByUUIDWithQuestions(examUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exam %s: %w", examUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return buildAdminExamDTO(exam), nil
}

func (s *adminExamService) ListExams() ([]dto.AdminExamDTO, error) {
	exams, err := s.examRepo.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AdminExamDTO, len(exams))
	for i := range exams {
		dtos[i] = *buildAdminExamDTO(&exams[i])
	}
	return dtos, nil
}

func (s *adminExamService) AddQuestion(examUUID uuid.UUID, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	exam, err := s.findExam(examUUID)
	if err != nil {
		return nil, err
	}

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.ExamID = exam.ID
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	qDTO := buildAdminQuestionDTO(question)
	return &qDTO, nil
}

func (s *adminExamService) DeleteQuestion(questionUUID uuid.UUID) error {
	if _, err := s.questionRepo.FindByUUID(questionUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question %s: %w", questionUUID, apperr.ErrNotFound)
		}
		return err
	}
	return s.questionRepo.Delete(questionUUID)
}

// ExpireSweep marks every exam whose date has passed as expired and
// returns how many were flipped.
func (s *adminExamService) ExpireSweep() (int64, error) {
	n, err := s.examRepo.ExpirePast(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Expire sweep failed")
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("expired", n).Msg("Expire sweep flagged exams")
	}
	return n, nil
}

func (s *adminExamService) ListResults(examUUID uuid.UUID) ([]dto.ExamResultDTO, error) {
	exam, err := s.findExam(examUUID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindAllByExam(exam.ID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ExamResultDTO, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		answers, err := s.answerRepo.FindAllByAttempt(a.ID)
		if err != nil {
			return nil, err
		}
		suspected, resubmitted := 0, 0
		for j := range answers {
			if answers[j].SuspectedFlag {
				suspected++
			}
			if answers[j].MultipleSubmissionFlag {
				resubmitted++
			}
		}
		result := dto.ExamResultDTO{
			AttemptUUID:         a.UUID,
			ApplicantName:       strings.TrimSpace(a.Applicant.FirstName + " " + a.Applicant.LastName),
			ApplicantEmail:      a.Applicant.Email,
			Status:              string(a.Status),
			ExamAttemptNumber:   a.ExamAttemptNumber,
			TotalQuestions:      a.TotalQuestions,
			AttemptedQuestions:  a.AttemptedQuestions,
			CorrectAnswers:      a.CorrectAnswers,
			RecommendationScore: a.RecommendationScore,
			SuspectedAnswers:    suspected,
			ResubmittedAnswers:  resubmitted,
			CompletedAt:         a.CompletedAt,
		}
		if a.RecommendedCourse != nil {
			result.RecommendedCourse = &dto.CourseDTO{
				UUID:     a.RecommendedCourse.UUID,
				Code:     a.RecommendedCourse.Code,
				Name:     a.RecommendedCourse.Name,
				MinScore: a.RecommendedCourse.MinScore,
			}
		}
		results[i] = result
	}
	return results, nil
}

func (s *adminExamService) findExam(examUUID uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.FindByUUID(examUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exam %s: %w", examUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return exam, nil
}

// buildQuestion validates authoring input. Choice-bearing questions
// must have unique single-letter labels and exactly one correct choice;
// essay questions must have none. Enforcing the one-correct invariant
// here keeps scoring free of ambiguity.
func buildQuestion(req dto.QuestionCreateDTO) (*model.Question, error) {
	question := model.Question{
		Text:         req.Text,
		QuestionType: req.QuestionType,
	}

	if !question.HasChoices() {
		if len(req.Choices) > 0 {
			return nil, apperr.NewValidationError("choices", "essay questions do not take choices")
		}
		return &question, nil
	}

	if len(req.Choices) < 2 {
		return nil, apperr.NewValidationError("choices", "at least two choices are required")
	}

	seen := make(map[string]bool, len(req.Choices))
	correct := 0
	for _, cReq := range req.Choices {
		if !model.ValidLabel(cReq.Label) {
			return nil, apperr.NewValidationError("label", "must be a single uppercase letter A-Z")
		}
		if seen[cReq.Label] {
			return nil, apperr.NewValidationError("label", fmt.Sprintf("duplicate label %q", cReq.Label))
		}
		seen[cReq.Label] = true
		if cReq.IsCorrect {
			correct++
		}
		question.Choices = append(question.Choices, model.Choice{
			Label:     cReq.Label,
			Text:      cReq.Text,
			IsCorrect: cReq.IsCorrect,
		})
	}
	if correct != 1 {
		return nil, apperr.NewValidationError("choices", "exactly one choice must be marked correct")
	}
	return &question, nil
}

func generateAccessCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func buildAdminExamDTO(exam *model.Exam) *dto.AdminExamDTO {
	var out dto.AdminExamDTO
	copier.Copy(&out.ExamSummaryDTO, exam)
	out.AccessCode = exam.AccessCode
	out.IsActive = exam.IsActive
	out.IsExpired = exam.IsExpired
	out.MaxApplicants = exam.MaxApplicants
	out.Questions = make([]dto.AdminQuestionDTO, len(exam.Questions))
	for i := range exam.Questions {
		out.Questions[i] = buildAdminQuestionDTO(&exam.Questions[i])
	}
	return &out
}

func buildAdminQuestionDTO(question *model.Question) dto.AdminQuestionDTO {
	qDTO := dto.AdminQuestionDTO{
		UUID:         question.UUID,
		Text:         question.Text,
		QuestionType: question.QuestionType,
	}
	qDTO.Choices = make([]dto.AdminChoiceDTO, len(question.Choices))
	for i, ch := range question.Choices {
		qDTO.Choices[i] = dto.AdminChoiceDTO{
			UUID:      ch.UUID,
			Label:     ch.Label,
			Text:      ch.Text,
			IsCorrect: ch.IsCorrect,
		}
	}
	return qDTO
}
