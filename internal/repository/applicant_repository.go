package repository

import (
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type ApplicantRepository interface {
	Create(applicant *model.ApplicantProfile) error
	FindByUUID(id uuid.UUID) (*model.ApplicantProfile, error)
	Update(applicant *model.ApplicantProfile) error
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(applicant *model.ApplicantProfile) error {
	return r.db.Create(applicant).Error
}

func (r *applicantRepository) FindByUUID(id uuid.UUID) (*model.ApplicantProfile, error) {
	var applicant model.ApplicantProfile
	if err := r.db.Preload("CourseApplied").Where("uuid = ?", id).First(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) Update(applicant *model.ApplicantProfile) error {
	return r.db.Save(applicant).Error
}
