package repository

import (
	"context"
	"encoding/json"
	"errors"
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionRepository reads the question catalog. The catalog is owned by an
// external seeding pipeline; this service never writes it. Per-exam listings
// are cached in redis since the catalog only changes on reseed.
type QuestionRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewQuestionRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *QuestionRepository {
	return &QuestionRepository{DB: db, Redis: rdb, CacheTTL: cacheTTL}
}

// FindByID returns (nil, nil) when the question does not exist; absence is
// the caller's business condition, not a storage failure.
func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ?", id).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByExamType(examType model.ExamType) ([]model.Question, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("questions:exam:%s", examType)

	if r.Redis != nil {
		cached, err := r.Redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var questions []model.Question
			if err := json.Unmarshal(cached, &questions); err == nil {
				return questions, nil
			}
			logger.Log.Warn("dropping malformed question cache entry", zap.String("key", cacheKey))
			r.Redis.Del(ctx, cacheKey)
		}
	}

	var questions []model.Question
	if err := r.DB.Where("exam_type = ?", examType).Find(&questions).Error; err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if payload, err := json.Marshal(questions); err == nil {
			if err := r.Redis.Set(ctx, cacheKey, payload, r.CacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache questions", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return questions, nil
}
