package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByUUID(id uuid.UUID) (*model.Exam, error)
	FindByUUIDWithQuestions(id uuid.UUID) (*model.Exam, error)
	FindAll() ([]model.Exam, error)
	FindUpcoming(today time.Time) ([]model.Exam, error)
	Update(exam *model.Exam) error
	Delete(id uuid.UUID) error
	ExpirePast(today time.Time) (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// Nested questions and choices are created in the same insert.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByUUID(id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.Where("uuid = ?", id).First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByUUIDWithQuestions(id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.label ASC")
		}).
		Where("uuid = ?", id).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Order("date DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

// FindUpcoming returns exams that still accept applications today,
// soonest first. Capacity filtering happens in the service where the
// per-exam attempt counts are known.
func (r *examRepository) FindUpcoming(today time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.
		Where("is_active = ? AND is_expired = ? AND date >= ?", true, false, model.StartOfDay(today)).
		Order("date ASC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) Delete(id uuid.UUID) error {
	return r.db.Where("uuid = ?", id).Delete(&model.Exam{}).Error
}

// ExpirePast flags every active exam whose date has passed. Invoked by
// the admin sweep endpoint; returns the number of exams flipped.
func (r *examRepository) ExpirePast(today time.Time) (int64, error) {
	res := r.db.Model(&model.Exam{}).
		Where("is_expired = ? AND date < ?", false, model.StartOfDay(today)).
		Update("is_expired", true)
	return res.RowsAffected, res.Error
}
