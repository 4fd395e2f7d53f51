package repository

import (
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

// ApplicantExamRepository serves the non-transactional read paths.
// Apply, SubmitAnswer and Complete query and mutate attempts inside
// their own transactions instead of going through this interface.
type ApplicantExamRepository interface {
	FindByUUID(id uuid.UUID) (*model.ApplicantExam, error)
	FindByUUIDWithDetails(id uuid.UUID) (*model.ApplicantExam, error)
	CountByExam(examID uint) (int64, error)
	FindAllByApplicant(applicantID uint) ([]model.ApplicantExam, error)
	FindRecentCompleted(applicantID uint, limit int) ([]model.ApplicantExam, error)
	FindAllByExam(examID uint) ([]model.ApplicantExam, error)
}

type applicantExamRepository struct {
	db *gorm.DB
}

func NewApplicantExamRepository(db *gorm.DB) ApplicantExamRepository {
	return &applicantExamRepository{db: db}
}

func (r *applicantExamRepository) FindByUUID(id uuid.UUID) (*model.ApplicantExam, error) {
	var attempt model.ApplicantExam
	if err := r.db.Where("uuid = ?", id).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *applicantExamRepository) FindByUUIDWithDetails(id uuid.UUID) (*model.ApplicantExam, error) {
	var attempt model.ApplicantExam
	err := r.db.
		Preload("Exam").
		Preload("Exam.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Exam.Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.label ASC")
		}).
		Preload("RecommendedCourse").
		Where("uuid = ?", id).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *applicantExamRepository) CountByExam(examID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ApplicantExam{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

func (r *applicantExamRepository) FindAllByApplicant(applicantID uint) ([]model.ApplicantExam, error) {
	var attempts []model.ApplicantExam
	err := r.db.
		Preload("Exam").
		Preload("RecommendedCourse").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *applicantExamRepository) FindRecentCompleted(applicantID uint, limit int) ([]model.ApplicantExam, error) {
	var attempts []model.ApplicantExam
	err := r.db.
		Preload("Exam").
		Preload("RecommendedCourse").
		Where("applicant_id = ? AND status = ?", applicantID, model.AttemptCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *applicantExamRepository) FindAllByExam(examID uint) ([]model.ApplicantExam, error) {
	var attempts []model.ApplicantExam
	err := r.db.
		Preload("Applicant").
		Preload("RecommendedCourse").
		Where("exam_id = ?", examID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
