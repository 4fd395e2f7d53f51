package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/patrick-john02/ATCRS/config"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. The shared
// cache keeps the database alive across the pooled connections gorm
// opens internally.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.Course{},
		&model.ApplicantProfile{},
		&model.AdminUser{},
		&model.Exam{},
		&model.Question{},
		&model.Choice{},
		&model.ApplicantExam{},
		&model.ApplicantAnswer{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Proctoring: config.Proctoring{
			MaxTabSwitches:   3,
			MaxAnswerSeconds: 600,
		},
	}
}

func seedApplicant(t *testing.T, db *gorm.DB, email string) *model.ApplicantProfile {
	t.Helper()
	applicant := model.ApplicantProfile{
		FirstName: "Test",
		LastName:  "Applicant",
		Email:     email,
	}
	if err := db.Create(&applicant).Error; err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return &applicant
}

// seedExam creates an active future exam with two MCQ questions whose
// correct choice is labeled A. Mutate adjusts the exam before insert.
func seedExam(t *testing.T, db *gorm.DB, mutate func(*model.Exam)) *model.Exam {
	t.Helper()
	exam := model.Exam{
		Title:           "Entrance Exam",
		Date:            time.Now().Add(48 * time.Hour),
		DurationMinutes: 60,
		IsActive:        true,
		MaxAttempts:     3,
		MaxApplicants:   10,
		Questions: []model.Question{
			{
				Text:         "2 + 2 = ?",
				QuestionType: model.QuestionTypeMCQ,
				Choices: []model.Choice{
					{Label: "A", Text: "4", IsCorrect: true},
					{Label: "B", Text: "5"},
				},
			},
			{
				Text:         "The earth is round.",
				QuestionType: model.QuestionTypeTrueFalse,
				Choices: []model.Choice{
					{Label: "A", Text: "True", IsCorrect: true},
					{Label: "B", Text: "False"},
				},
			},
		},
	}
	if mutate != nil {
		mutate(&exam)
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	return &exam
}

// seedAttempt inserts an attempt directly, bypassing the apply flow,
// for tests that start from a known lifecycle state.
func seedAttempt(t *testing.T, db *gorm.DB, applicant *model.ApplicantProfile, exam *model.Exam, status model.AttemptStatus) *model.ApplicantExam {
	t.Helper()
	attempt := model.ApplicantExam{
		ApplicantID:       applicant.ID,
		ExamID:            exam.ID,
		Status:            status,
		TotalQuestions:    len(exam.Questions),
		ExamAttemptNumber: 1,
	}
	if status != model.AttemptNotStarted {
		now := time.Now()
		attempt.StartedAt = &now
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
	return &attempt
}

func seedCourse(t *testing.T, db *gorm.DB, code, name string, minScore float64) *model.Course {
	t.Helper()
	course := model.Course{Code: code, Name: name, MinScore: minScore}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return &course
}
