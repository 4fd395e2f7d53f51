package repository

import (
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByUUID(id uuid.UUID) (*model.Course, error)
	FindAll() ([]model.Course, error)
	Update(course *model.Course) error
	Delete(id uuid.UUID) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByUUID(id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.Where("uuid = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Order("min_score DESC, code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Where("uuid = ?", id).Delete(&model.Course{}).Error
}
