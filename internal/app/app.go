package app

import (
	"context"
	"exam_quiz_backend/internal/config"
	"exam_quiz_backend/internal/controller"
	"exam_quiz_backend/internal/middleware"
	"exam_quiz_backend/internal/repository"
	"exam_quiz_backend/internal/service"
	"exam_quiz_backend/pkg/database"
	"exam_quiz_backend/pkg/logger"
	"exam_quiz_backend/pkg/monitoring"
	"exam_quiz_backend/pkg/security"
	"exam_quiz_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	resolver middleware.IdentityResolver
}

type repositories struct {
	question          *repository.QuestionRepository
	answerEvent       *repository.AnswerEventRepository
	questionStatistic *repository.QuestionStatisticRepository
}

type services struct {
	quiz  *service.QuizService
	stats *service.StatsService
}

type controllers struct {
	quiz   *controller.QuizController
	stats  *controller.StatsController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	cacheTTL := time.Duration(cfg.Cache.QuestionTTLMinutes) * time.Minute
	return &repositories{
		question:          repository.NewQuestionRepository(db, rdb, cacheTTL),
		answerEvent:       repository.NewAnswerEventRepository(db),
		questionStatistic: repository.NewQuestionStatisticRepository(db),
	}
}

func (a *App) initServices(repos *repositories) *services {
	return &services{
		quiz:  service.NewQuizService(repos.question, repos.answerEvent, repos.questionStatistic),
		stats: service.NewStatsService(repos.question, repos.answerEvent, repos.questionStatistic),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		quiz:   controller.NewQuizController(s.quiz),
		stats:  controller.NewStatsController(s.stats),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		resolver: middleware.NewIdentityResolver(cfg),
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-quiz-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
