package app

import (
	"exam_quiz_backend/docs"
	"exam_quiz_backend/internal/middleware"
	"exam_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.Identity(a.resolver))
	{
		authorized.GET("/questions", c.quiz.GetQuestions)
		authorized.POST("/answers", c.quiz.SubmitAnswer)

		stats := authorized.Group("/stats")
		{
			stats.GET("/summary", c.stats.GetSummary)
			stats.GET("/history", c.stats.GetHistory)
		}
	}
}
