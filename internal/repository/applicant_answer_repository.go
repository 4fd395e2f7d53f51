package repository

import (
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type ApplicantAnswerRepository interface {
	FindAllByAttempt(attemptID uint) ([]model.ApplicantAnswer, error)
}

type applicantAnswerRepository struct {
	db *gorm.DB
}

func NewApplicantAnswerRepository(db *gorm.DB) ApplicantAnswerRepository {
	return &applicantAnswerRepository{db: db}
}

func (r *applicantAnswerRepository) FindAllByAttempt(attemptID uint) ([]model.ApplicantAnswer, error) {
	var answers []model.ApplicantAnswer
	err := r.db.
		Preload("Question").
		Preload("SelectedChoice").
		Where("applicant_exam_id = ?", attemptID).
		Order("question_id ASC").
		Find(&answers).Error
	return answers, err
}
