package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/controller"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminExamController exposes exam authoring, the expiry sweep, and the
// per-exam results screen.
type AdminExamController struct {
	examSvc service.AdminExamService
}

func NewAdminExamController(examSvc service.AdminExamService) *AdminExamController {
	return &AdminExamController{examSvc: examSvc}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// CreateExam godoc
// @Summary Create an exam with questions and choices
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam with nested questions"
// @Success 201 {object} dto.AdminExamDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/exams [post]
func (ctrl *AdminExamController) CreateExam(c *gin.Context) {
	var req dto.ExamCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ExamCreateDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.examSvc.CreateExam(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateExam godoc
// @Summary Update exam metadata
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam UUID"
// @Param exam body dto.ExamUpdateDTO true "Fields to update"
// @Success 200 {object} dto.AdminExamDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [put]
func (ctrl *AdminExamController) UpdateExam(c *gin.Context) {
	examID, ok := parseUUIDParam(c, "exam_id")
	if !ok {
		return
	}

	var req dto.ExamUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.examSvc.UpdateExam(examID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteExam godoc
// @Summary Delete an exam and its questions
// @Tags admin-exams
// @Param exam_id path string true "Exam UUID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [delete]
func (ctrl *AdminExamController) DeleteExam(c *gin.Context) {
	examID, ok := parseUUIDParam(c, "exam_id")
	if !ok {
		return
	}

	if err := ctrl.examSvc.DeleteExam(examID); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetExam godoc
// @Summary Get an exam with questions and correct choices
// @Tags admin-exams
// @Produce json
// @Param exam_id path string true "Exam UUID"
// @Success 200 {object} dto.AdminExamDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [get]
func (ctrl *AdminExamController) GetExam(c *gin.Context) {
	examID, ok := parseUUIDParam(c, "exam_id")
	if !ok {
		return
	}

	resp, err := ctrl.examSvc.GetExam(examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListExams godoc
// @Summary List all exams
// @Tags admin-exams
// @Produce json
// @Success 200 {array} dto.AdminExamDTO
// @Router /admin/exams [get]
func (ctrl *AdminExamController) ListExams(c *gin.Context) {
	resp, err := ctrl.examSvc.ListExams()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddQuestion godoc
// @Summary Add a question to an exam
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam UUID"
// @Param question body dto.QuestionCreateDTO true "Question with choices"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/questions [post]
func (ctrl *AdminExamController) AddQuestion(c *gin.Context) {
	examID, ok := parseUUIDParam(c, "exam_id")
	if !ok {
		return
	}

	var req dto.QuestionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.examSvc.AddQuestion(examID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteQuestion godoc
// @Summary Delete a question and its choices
// @Tags admin-exams
// @Param question_id path string true "Question UUID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (ctrl *AdminExamController) DeleteQuestion(c *gin.Context) {
	questionID, ok := parseUUIDParam(c, "question_id")
	if !ok {
		return
	}

	if err := ctrl.examSvc.DeleteQuestion(questionID); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExpireSweep godoc
// @Summary Flag exams past their date as expired
// @Tags admin-exams
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /admin/exams/expire-sweep [post]
func (ctrl *AdminExamController) ExpireSweep(c *gin.Context) {
	n, err := ctrl.examSvc.ExpireSweep()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": n})
}

// ListResults godoc
// @Summary List all attempt results for an exam
// @Tags admin-exams
// @Produce json
// @Param exam_id path string true "Exam UUID"
// @Success 200 {array} dto.ExamResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/results [get]
func (ctrl *AdminExamController) ListResults(c *gin.Context) {
	examID, ok := parseUUIDParam(c, "exam_id")
	if !ok {
		return
	}

	resp, err := ctrl.examSvc.ListResults(examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
