package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
)

func TestApplyCreatesNotStartedAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "first@example.com")
	exam := seedExam(t, db, nil)

	resp, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if resp.Status != string(model.AttemptNotStarted) {
		t.Errorf("status = %q, want %q", resp.Status, model.AttemptNotStarted)
	}
	if resp.ExamAttemptNumber != 1 {
		t.Errorf("attempt number = %d, want 1", resp.ExamAttemptNumber)
	}

	var attempt model.ApplicantExam
	if err := db.Where("uuid = ?", resp.UUID).First(&attempt).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if attempt.TotalQuestions != 2 {
		t.Errorf("total questions = %d, want 2", attempt.TotalQuestions)
	}
	if attempt.StartedAt != nil {
		t.Error("started_at should be unset before the attempt starts")
	}
}

func TestApplyIsIdempotentWhileAttemptOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "repeat@example.com")
	exam := seedExam(t, db, nil)

	first, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	second, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if first.UUID != second.UUID {
		t.Errorf("second apply created a new attempt %s, want existing %s", second.UUID, first.UUID)
	}

	var count int64
	db.Model(&model.ApplicantExam{}).Count(&count)
	if count != 1 {
		t.Errorf("attempt rows = %d, want 1", count)
	}
}

func TestApplyRejectsUnknownApplicantAndExam(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "known@example.com")
	exam := seedExam(t, db, nil)

	_, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: uuid.New()})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown exam: err = %v, want ErrNotFound", err)
	}
	_, err = svc.Apply(dto.ApplyExamRequest{ApplicantUUID: uuid.New(), ExamUUID: exam.UUID})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown applicant: err = %v, want ErrNotFound", err)
	}
}

func TestApplyRejectsUnavailableExam(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Exam)
	}{
		{"inactive", func(e *model.Exam) { e.IsActive = false }},
		{"expired", func(e *model.Exam) { e.IsExpired = true }},
		{"past date", func(e *model.Exam) { e.Date = time.Now().Add(-48 * time.Hour) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
			applicant := seedApplicant(t, db, "blocked@example.com")
			exam := seedExam(t, db, tc.mutate)

			_, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
			if !errors.Is(err, apperr.ErrExamUnavailable) {
				t.Errorf("err = %v, want ErrExamUnavailable", err)
			}
		})
	}
}

func TestApplyRejectsWrongAccessCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "gated@example.com")
	exam := seedExam(t, db, func(e *model.Exam) { e.AccessCode = "SECRET42" })

	_, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID, AccessCode: "WRONG"})
	if !errors.Is(err, apperr.ErrExamUnavailable) {
		t.Errorf("wrong code: err = %v, want ErrExamUnavailable", err)
	}

	if _, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID, AccessCode: "SECRET42"}); err != nil {
		t.Errorf("correct code: %v", err)
	}
}

func TestApplyEnforcesCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	exam := seedExam(t, db, func(e *model.Exam) { e.MaxApplicants = 1 })
	first := seedApplicant(t, db, "seat1@example.com")
	second := seedApplicant(t, db, "seat2@example.com")

	if _, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: first.UUID, ExamUUID: exam.UUID}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: second.UUID, ExamUUID: exam.UUID})
	if !errors.Is(err, apperr.ErrCapacityExceeded) {
		t.Errorf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestApplyEnforcesAttemptLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	exam := seedExam(t, db, func(e *model.Exam) { e.MaxAttempts = 2 })
	applicant := seedApplicant(t, db, "retaker@example.com")

	for i := 0; i < 2; i++ {
		resp, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
		if err != nil {
			t.Fatalf("Apply %d: %v", i+1, err)
		}
		if resp.ExamAttemptNumber != i+1 {
			t.Errorf("attempt number = %d, want %d", resp.ExamAttemptNumber, i+1)
		}
		err = db.Model(&model.ApplicantExam{}).
			Where("uuid = ?", resp.UUID).
			Update("status", model.AttemptCompleted).Error
		if err != nil {
			t.Fatalf("complete attempt %d: %v", i+1, err)
		}
	}

	_, err := svc.Apply(dto.ApplyExamRequest{ApplicantUUID: applicant.UUID, ExamUUID: exam.UUID})
	if !errors.Is(err, apperr.ErrAttemptLimitExceeded) {
		t.Errorf("err = %v, want ErrAttemptLimitExceeded", err)
	}
}

func TestStartTransitionsToInProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "starter@example.com")
	exam := seedExam(t, db, nil)
	attempt := seedAttempt(t, db, applicant, exam, model.AttemptNotStarted)

	detail, err := svc.Start(attempt.UUID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if detail.Status != string(model.AttemptInProgress) {
		t.Errorf("status = %q, want %q", detail.Status, model.AttemptInProgress)
	}
	if detail.StartedAt == nil {
		t.Error("started_at not stamped")
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(detail.Questions))
	}
	if len(detail.Questions[0].Choices) != 2 {
		t.Errorf("choices = %d, want 2", len(detail.Questions[0].Choices))
	}

	// Starting again is a no-op.
	again, err := svc.Start(attempt.UUID)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if again.Status != string(model.AttemptInProgress) {
		t.Errorf("second start status = %q", again.Status)
	}
}

func TestStartRejectsCompletedAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "done@example.com")
	exam := seedExam(t, db, nil)
	attempt := seedAttempt(t, db, applicant, exam, model.AttemptCompleted)

	_, err := svc.Start(attempt.UUID)
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestGetWithholdsChoiceCorrectness(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(repository.NewApplicantExamRepository(db), db)
	applicant := seedApplicant(t, db, "viewer@example.com")
	exam := seedExam(t, db, nil)
	attempt := seedAttempt(t, db, applicant, exam, model.AttemptInProgress)

	detail, err := svc.Get(attempt.UUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "is_correct") {
		t.Errorf("attempt detail leaks choice correctness: %s", raw)
	}

	if _, err := svc.Get(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown attempt: err = %v, want ErrNotFound", err)
	}
}
