package repository

import (
	"exam_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// AnswerEventRepository is the append-only log of answer facts.
type AnswerEventRepository struct {
	DB *gorm.DB
}

func NewAnswerEventRepository(db *gorm.DB) *AnswerEventRepository {
	return &AnswerEventRepository{DB: db}
}

// Create appends one event. The stored timestamp is assigned here if the
// caller left it zero.
func (r *AnswerEventRepository) Create(event *model.AnswerEvent) error {
	if event.AnsweredAt.IsZero() {
		event.AnsweredAt = time.Now().UTC()
	}
	return r.DB.Create(event).Error
}

// FindByUser returns all events for a user, most recent first.
func (r *AnswerEventRepository) FindByUser(userID string) ([]model.AnswerEvent, error) {
	var events []model.AnswerEvent
	err := r.DB.Where("user_id = ?", userID).Order("answered_at DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
