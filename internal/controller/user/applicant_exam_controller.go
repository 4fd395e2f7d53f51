package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/controller"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/service"
	"github.com/rs/zerolog/log"
)

// ApplicantExamController exposes the applicant-facing exam workflow:
// apply, start, answer, complete, and the dashboard reads.
type ApplicantExamController struct {
	attemptSvc        service.AttemptService
	answerSvc         service.AnswerService
	recommendationSvc service.RecommendationService
	applicantSvc      service.ApplicantService
}

func NewApplicantExamController(
	attemptSvc service.AttemptService,
	answerSvc service.AnswerService,
	recommendationSvc service.RecommendationService,
	applicantSvc service.ApplicantService,
) *ApplicantExamController {
	return &ApplicantExamController{
		attemptSvc:        attemptSvc,
		answerSvc:         answerSvc,
		recommendationSvc: recommendationSvc,
		applicantSvc:      applicantSvc,
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// Apply godoc
// @Summary Apply to an exam
// @Description Registers the applicant for a scheduled exam, creating a not_started attempt. Idempotent while an open attempt exists.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.ApplyExamRequest true "Applicant, exam and access code"
// @Success 201 {object} dto.ApplyExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Exam unavailable, full, or attempt limit reached"
// @Router /exams/apply [post]
func (ctrl *ApplicantExamController) Apply(c *gin.Context) {
	var req dto.ApplyExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ApplyExamRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.attemptSvc.Apply(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Start godoc
// @Summary Start an attempt
// @Description Moves a not_started attempt to in_progress and returns the exam with its questions. Choices never reveal correctness.
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt UUID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/start [post]
func (ctrl *ApplicantExamController) Start(c *gin.Context) {
	attemptID, ok := parseUUIDParam(c, "attempt_id")
	if !ok {
		return
	}

	resp, err := ctrl.attemptSvc.Start(attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get an attempt
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt UUID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (ctrl *ApplicantExamController) Get(c *gin.Context) {
	attemptID, ok := parseUUIDParam(c, "attempt_id")
	if !ok {
		return
	}

	resp, err := ctrl.attemptSvc.Get(attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Records or overwrites the applicant's choice for one question of an in_progress attempt.
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt UUID"
// @Param request body dto.SubmitAnswerRequest true "Question, choice and timing signals"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Router /attempts/{attempt_id}/answers [post]
func (ctrl *ApplicantExamController) SubmitAnswer(c *gin.Context) {
	attemptID, ok := parseUUIDParam(c, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAnswerRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.answerSvc.SubmitAnswer(attemptID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete godoc
// @Summary Complete an attempt
// @Description Finalizes an in_progress attempt: computes the recommendation score and matches the best qualifying course.
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt UUID"
// @Success 200 {object} dto.CompleteExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Router /attempts/{attempt_id}/complete [post]
func (ctrl *ApplicantExamController) Complete(c *gin.Context) {
	attemptID, ok := parseUUIDParam(c, "attempt_id")
	if !ok {
		return
	}

	resp, err := ctrl.recommendationSvc.Complete(attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary List an applicant's attempt history
// @Tags applicants
// @Produce json
// @Param applicant_id path string true "Applicant UUID"
// @Success 200 {array} dto.AttemptHistoryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /applicants/{applicant_id}/history [get]
func (ctrl *ApplicantExamController) History(c *gin.Context) {
	applicantID, ok := parseUUIDParam(c, "applicant_id")
	if !ok {
		return
	}

	resp, err := ctrl.applicantSvc.ListHistory(applicantID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecentScores godoc
// @Summary List an applicant's latest completed attempts
// @Tags applicants
// @Produce json
// @Param applicant_id path string true "Applicant UUID"
// @Success 200 {array} dto.AttemptHistoryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /applicants/{applicant_id}/recent-scores [get]
func (ctrl *ApplicantExamController) RecentScores(c *gin.Context) {
	applicantID, ok := parseUUIDParam(c, "applicant_id")
	if !ok {
		return
	}

	resp, err := ctrl.applicantSvc.RecentScores(applicantID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpcomingExams godoc
// @Summary List exams still open for application
// @Tags exams
// @Produce json
// @Success 200 {array} dto.UpcomingExamDTO
// @Router /exams/upcoming [get]
func (ctrl *ApplicantExamController) UpcomingExams(c *gin.Context) {
	resp, err := ctrl.applicantSvc.UpcomingExams()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
