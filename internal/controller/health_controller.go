package controller

import (
	"exam_quiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Health check
// @Description Liveness plus a database ping
// @Tags system
// @Produce json
// @Success 200 {object} util.ResultEnvelope
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.Fail(ctx, util.InternalError("Internal server error", err))
		return
	}

	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, util.ErrorEnvelope{
			Error: util.ErrorBody{Code: util.CodeDatabaseError, Message: "Database unavailable"},
		})
		return
	}

	util.OK(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}
