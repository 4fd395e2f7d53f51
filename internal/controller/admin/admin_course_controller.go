package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrick-john02/ATCRS/internal/controller"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/service"
)

// AdminCourseController manages the course catalog used by the
// recommendation engine.
type AdminCourseController struct {
	courseSvc service.CourseService
}

func NewAdminCourseController(courseSvc service.CourseService) *AdminCourseController {
	return &AdminCourseController{courseSvc: courseSvc}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course with minimum qualifying score"
// @Success 201 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/courses [post]
func (ctrl *AdminCourseController) CreateCourse(c *gin.Context) {
	var req dto.CourseCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.courseSvc.CreateCourse(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Param course_id path string true "Course UUID"
// @Param course body dto.CourseUpdateDTO true "Fields to update"
// @Success 200 {object} dto.CourseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id} [put]
func (ctrl *AdminCourseController) UpdateCourse(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "course_id")
	if !ok {
		return
	}

	var req dto.CourseUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.courseSvc.UpdateCourse(courseID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags admin-courses
// @Param course_id path string true "Course UUID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id} [delete]
func (ctrl *AdminCourseController) DeleteCourse(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "course_id")
	if !ok {
		return
	}

	if err := ctrl.courseSvc.DeleteCourse(courseID); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCourses godoc
// @Summary List all courses
// @Tags admin-courses
// @Produce json
// @Success 200 {array} dto.CourseDTO
// @Router /admin/courses [get]
func (ctrl *AdminCourseController) ListCourses(c *gin.Context) {
	resp, err := ctrl.courseSvc.ListCourses()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
