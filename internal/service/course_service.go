package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CourseService is the admin CRUD surface for the course catalog the
// recommendation engine matches against.
type CourseService interface {
	CreateCourse(req dto.CourseCreateDTO) (*dto.CourseDTO, error)
	UpdateCourse(courseUUID uuid.UUID, req dto.CourseUpdateDTO) (*dto.CourseDTO, error)
	DeleteCourse(courseUUID uuid.UUID) error
	ListCourses() ([]dto.CourseDTO, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(req dto.CourseCreateDTO) (*dto.CourseDTO, error) {
	course := model.Course{
		Code:     req.Code,
		Name:     req.Name,
		MinScore: req.MinScore,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("Failed to create course")
		return nil, err
	}

	var out dto.CourseDTO
	copier.Copy(&out, &course)
	return &out, nil
}

func (s *courseService) UpdateCourse(courseUUID uuid.UUID, req dto.CourseUpdateDTO) (*dto.CourseDTO, error) {
	course, err := s.findCourse(courseUUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.MinScore != nil {
		course.MinScore = *req.MinScore
	}
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}

	var out dto.CourseDTO
	copier.Copy(&out, course)
	return &out, nil
}

func (s *courseService) DeleteCourse(courseUUID uuid.UUID) error {
	if _, err := s.findCourse(courseUUID); err != nil {
		return err
	}
	return s.courseRepo.Delete(courseUUID)
}

func (s *courseService) ListCourses() ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseDTO, len(courses))
	for i := range courses {
		copier.Copy(&out[i], &courses[i])
	}
	return out, nil
}

func (s *courseService) findCourse(courseUUID uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByUUID(courseUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %s: %w", courseUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return course, nil
}
