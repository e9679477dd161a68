package controller

import (
	"exam_quiz_backend/internal/middleware"
	"exam_quiz_backend/internal/service"
	"exam_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary Fetch a random sample of questions
// @Description Returns up to limit randomly sampled questions for one exam type
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param exam query string true "Exam type" Enums(FE, AP)
// @Param limit query int false "Sample size (1-50)" default(10)
// @Success 200 {object} util.ResultEnvelope
// @Failure 400 {object} util.ErrorEnvelope
// @Router /questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	exam := ctx.Query("exam")

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil {
		util.Fail(ctx, util.InvalidParameter("limit must be an integer"))
		return
	}

	result, err := c.QuizService.GetQuestions(exam, limit)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.OK(ctx, result)
}

type submitAnswerRequest struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex *int   `json:"selectedIndex"`
}

// @Summary Submit an answer
// @Description Grades the submission, records the answer event and updates the per-question statistics
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body submitAnswerRequest true "Answer submission"
// @Success 200 {object} util.ResultEnvelope
// @Failure 400 {object} util.ErrorEnvelope
// @Failure 404 {object} util.ErrorEnvelope
// @Router /answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	userID := middleware.CallerID(ctx)
	if userID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req submitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Fail(ctx, util.InvalidParameter("Request body is required"))
		return
	}
	if req.SelectedIndex == nil {
		util.Fail(ctx, util.InvalidParameter("selectedIndex must be between 0 and 3"))
		return
	}

	result, err := c.QuizService.SubmitAnswer(service.SubmitAnswerInput{
		UserID:        userID,
		QuestionID:    req.QuestionID,
		SelectedIndex: *req.SelectedIndex,
	})
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.OK(ctx, result)
}
