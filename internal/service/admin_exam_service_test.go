package service

import (
	"errors"
	"testing"
	"time"

	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
	"gorm.io/gorm"
)

func newAdminExamService(db *gorm.DB) AdminExamService {
	return NewAdminExamService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewApplicantExamRepository(db),
		repository.NewApplicantAnswerRepository(db),
	)
}

func validExamCreate() dto.ExamCreateDTO {
	return dto.ExamCreateDTO{
		Title:           "Placement Test",
		Date:            time.Now().Add(72 * time.Hour).Format("2006-01-02"),
		DurationMinutes: 90,
		MaxAttempts:     2,
		MaxApplicants:   50,
		Questions: []dto.QuestionCreateDTO{
			{
				Text:         "Pick A.",
				QuestionType: model.QuestionTypeMCQ,
				Choices: []dto.ChoiceCreateDTO{
					{Label: "A", Text: "right", IsCorrect: true},
					{Label: "B", Text: "wrong"},
				},
			},
		},
	}
}

func TestCreateExamWithNestedQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)

	resp, err := svc.CreateExam(validExamCreate())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if resp.Slug == "" {
		t.Error("slug not generated")
	}
	if len(resp.AccessCode) != 8 {
		t.Errorf("access code %q, want generated 8-char code", resp.AccessCode)
	}
	if !resp.IsActive {
		t.Error("new exam should be active")
	}
	if len(resp.Questions) != 1 || len(resp.Questions[0].Choices) != 2 {
		t.Fatalf("questions not persisted: %+v", resp.Questions)
	}

	var count int64
	db.Model(&model.Choice{}).Count(&count)
	if count != 2 {
		t.Errorf("choice rows = %d, want 2", count)
	}
}

func TestCreateExamKeepsProvidedAccessCode(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)

	req := validExamCreate()
	req.AccessCode = "LETMEIN"
	resp, err := svc.CreateExam(req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if resp.AccessCode != "LETMEIN" {
		t.Errorf("access code = %q, want LETMEIN", resp.AccessCode)
	}
}

func TestCreateExamRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)

	req := validExamCreate()
	req.Date = "03/15/2027"
	if _, err := svc.CreateExam(req); !apperr.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestQuestionAuthoringValidation(t *testing.T) {
	twoChoices := func(correctA, correctB bool) []dto.ChoiceCreateDTO {
		return []dto.ChoiceCreateDTO{
			{Label: "A", Text: "first", IsCorrect: correctA},
			{Label: "B", Text: "second", IsCorrect: correctB},
		}
	}

	cases := []struct {
		name     string
		question dto.QuestionCreateDTO
	}{
		{
			"no correct choice",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeMCQ, Choices: twoChoices(false, false)},
		},
		{
			"two correct choices",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeMCQ, Choices: twoChoices(true, true)},
		},
		{
			"single choice",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeMCQ, Choices: []dto.ChoiceCreateDTO{
				{Label: "A", Text: "only", IsCorrect: true},
			}},
		},
		{
			"lowercase label",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeMCQ, Choices: []dto.ChoiceCreateDTO{
				{Label: "a", Text: "first", IsCorrect: true},
				{Label: "B", Text: "second"},
			}},
		},
		{
			"duplicate labels",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeMCQ, Choices: []dto.ChoiceCreateDTO{
				{Label: "A", Text: "first", IsCorrect: true},
				{Label: "A", Text: "second"},
			}},
		},
		{
			"essay with choices",
			dto.QuestionCreateDTO{Text: "q", QuestionType: model.QuestionTypeEssay, Choices: twoChoices(true, false)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := newAdminExamService(db)

			req := validExamCreate()
			req.Questions = []dto.QuestionCreateDTO{tc.question}
			if _, err := svc.CreateExam(req); !apperr.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestAddQuestionToExistingExam(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)
	exam := seedExam(t, db, nil)

	q, err := svc.AddQuestion(exam.UUID, dto.QuestionCreateDTO{
		Text:         "New question",
		QuestionType: model.QuestionTypeMCQ,
		Choices: []dto.ChoiceCreateDTO{
			{Label: "A", Text: "yes", IsCorrect: true},
			{Label: "B", Text: "no"},
		},
	})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	loaded, err := svc.GetExam(exam.UUID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if len(loaded.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(loaded.Questions))
	}
	if loaded.Questions[2].UUID != q.UUID {
		t.Error("added question not last in creation order")
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)
	exam := seedExam(t, db, nil)

	if err := svc.DeleteQuestion(exam.Questions[0].UUID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	loaded, err := svc.GetExam(exam.UUID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if len(loaded.Questions) != 1 {
		t.Errorf("questions = %d, want 1", len(loaded.Questions))
	}

	if err := svc.DeleteQuestion(exam.Questions[0].UUID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleting twice: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateExamPatchesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)
	exam := seedExam(t, db, nil)

	title := "Renamed Exam"
	inactive := false
	resp, err := svc.UpdateExam(exam.UUID, dto.ExamUpdateDTO{
		Title:    &title,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateExam: %v", err)
	}
	if resp.Title != title {
		t.Errorf("title = %q, want %q", resp.Title, title)
	}
	if resp.IsActive {
		t.Error("is_active not patched")
	}
	if resp.DurationMinutes != exam.DurationMinutes {
		t.Errorf("duration changed to %d without being set", resp.DurationMinutes)
	}
}

func TestExpireSweepFlagsOnlyPastExams(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)
	past := seedExam(t, db, func(e *model.Exam) {
		e.Title = "Last Year"
		e.Date = time.Now().Add(-72 * time.Hour)
	})
	future := seedExam(t, db, func(e *model.Exam) { e.Title = "Next Month" })

	n, err := svc.ExpireSweep()
	if err != nil {
		t.Fatalf("ExpireSweep: %v", err)
	}
	if n != 1 {
		t.Errorf("expired = %d, want 1", n)
	}

	var reloaded model.Exam
	if err := db.First(&reloaded, past.ID).Error; err != nil {
		t.Fatalf("reload past exam: %v", err)
	}
	if !reloaded.IsExpired {
		t.Error("past exam not flagged expired")
	}
	reloaded = model.Exam{}
	if err := db.First(&reloaded, future.ID).Error; err != nil {
		t.Fatalf("reload future exam: %v", err)
	}
	if reloaded.IsExpired {
		t.Error("future exam wrongly flagged expired")
	}

	// A second sweep has nothing left to flip.
	n, err = svc.ExpireSweep()
	if err != nil {
		t.Fatalf("second ExpireSweep: %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep expired = %d, want 0", n)
	}
}

func TestListResultsIncludesRecommendationAndAnswerFlags(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminExamService(db)
	answerSvc := NewAnswerService(testConfig(), db)
	recSvc := NewRecommendationService(db)
	applicant := seedApplicant(t, db, "results@example.com")
	exam := seedExam(t, db, nil)
	seedCourse(t, db, "BA", "Business Administration", 50)

	attempt := seedAttempt(t, db, applicant, exam, model.AttemptInProgress)

	// First question answered correctly but with excessive tab switches.
	correct := exam.Questions[0].Choices[0]
	if _, err := answerSvc.SubmitAnswer(attempt.UUID, dto.SubmitAnswerRequest{
		QuestionUUID:   exam.Questions[0].UUID,
		ChoiceUUID:     &correct.UUID,
		TabSwitchCount: 5,
	}); err != nil {
		t.Fatalf("submit first answer: %v", err)
	}

	// Second question answered correctly, then changed to wrong.
	correct = exam.Questions[1].Choices[0]
	wrong := exam.Questions[1].Choices[1]
	if _, err := answerSvc.SubmitAnswer(attempt.UUID, dto.SubmitAnswerRequest{
		QuestionUUID: exam.Questions[1].UUID,
		ChoiceUUID:   &correct.UUID,
	}); err != nil {
		t.Fatalf("submit second answer: %v", err)
	}
	if _, err := answerSvc.SubmitAnswer(attempt.UUID, dto.SubmitAnswerRequest{
		QuestionUUID: exam.Questions[1].UUID,
		ChoiceUUID:   &wrong.UUID,
	}); err != nil {
		t.Fatalf("resubmit second answer: %v", err)
	}

	if _, err := recSvc.Complete(attempt.UUID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	results, err := svc.ListResults(exam.UUID)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	r := results[0]
	if r.ApplicantName != "Test Applicant" {
		t.Errorf("applicant name = %q", r.ApplicantName)
	}
	if r.RecommendationScore == nil || *r.RecommendationScore != 50 {
		t.Errorf("score = %v, want 50", r.RecommendationScore)
	}
	if r.RecommendedCourse == nil || r.RecommendedCourse.Code != "BA" {
		t.Errorf("recommended course = %+v, want BA", r.RecommendedCourse)
	}
	if r.SuspectedAnswers != 1 {
		t.Errorf("suspected answers = %d, want 1", r.SuspectedAnswers)
	}
	if r.ResubmittedAnswers != 1 {
		t.Errorf("resubmitted answers = %d, want 1", r.ResubmittedAnswers)
	}
}
