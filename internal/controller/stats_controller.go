package controller

import (
	"exam_quiz_backend/internal/middleware"
	"exam_quiz_backend/internal/service"
	"exam_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// @Summary Dashboard summary
// @Description Answered ratio, study streak, proficiency distribution and recent activity for the caller
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.ResultEnvelope
// @Router /stats/summary [get]
func (c *StatsController) GetSummary(ctx *gin.Context) {
	userID := middleware.CallerID(ctx)
	if userID == "" {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.StatsService.GetSummary(userID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.OK(ctx, summary)
}

// @Summary Answer history
// @Description Answered questions with proficiency classification, filterable by category, proficiency level and exam type
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Category filter"
// @Param proficiencyLevel query string false "Proficiency filter" Enums(master, good, neutral, weak, very-weak)
// @Param examType query string false "Exam type filter" Enums(FE, AP)
// @Success 200 {object} util.ResultEnvelope
// @Failure 400 {object} util.ErrorEnvelope
// @Router /stats/history [get]
func (c *StatsController) GetHistory(ctx *gin.Context) {
	userID := middleware.CallerID(ctx)
	if userID == "" {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.StatsService.GetHistory(userID, service.HistoryFilter{
		Category:         ctx.Query("category"),
		ProficiencyLevel: ctx.Query("proficiencyLevel"),
		ExamType:         ctx.Query("examType"),
	})
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.OK(ctx, view)
}
