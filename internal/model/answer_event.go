package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerEvent is an immutable fact recorded once per submission. Events are
// never updated or deleted; the statistics rows are derived from them.
// swagger:model AnswerEvent
type AnswerEvent struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string    `gorm:"size:64;not null;index:idx_answer_events_user_time,priority:1" json:"userId"`
	QuestionID    string    `gorm:"size:64;not null;index" json:"questionId"`
	ExamType      ExamType  `gorm:"size:8;not null" json:"examType"`
	Category      string    `gorm:"size:64" json:"category"`
	IsCorrect     bool      `gorm:"not null" json:"isCorrect"`
	SelectedIndex int       `gorm:"not null" json:"selectedIndex"`
	AnsweredAt    time.Time `gorm:"not null;index:idx_answer_events_user_time,priority:2" json:"answeredAt"`
}

func (AnswerEvent) TableName() string {
	return "answer_events"
}

func (e *AnswerEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
