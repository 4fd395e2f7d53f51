package repository

import (
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByUUID(id uuid.UUID) (*model.Question, error)
	FindByUUIDWithChoices(id uuid.UUID) (*model.Question, error)
	FindByExamID(examID uint) ([]model.Question, error)
	Delete(id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByUUID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("uuid = ?", id).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByUUIDWithChoices(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.label ASC")
		}).
		Where("uuid = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByExamID(examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.label ASC")
		}).
		Where("exam_id = ?", examID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uuid.UUID) error {
	return r.db.Where("uuid = ?", id).Delete(&model.Question{}).Error
}
