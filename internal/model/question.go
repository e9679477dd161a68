package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExamType identifies which exam a question belongs to.
type ExamType string

const (
	ExamTypeFE ExamType = "FE"
	ExamTypeAP ExamType = "AP"
)

func (e ExamType) Valid() bool {
	return e == ExamTypeFE || e == ExamTypeAP
}

// Question is catalog reference data, read-only from this service's
// perspective.
// swagger:model Question
type Question struct {
	ID             string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ExamType       ExamType        `gorm:"size:8;index;not null" json:"examType"`
	Year           string          `gorm:"size:16" json:"year"`
	QuestionNumber string          `gorm:"size:16" json:"questionNumber"`
	Text           string          `gorm:"type:text;not null" json:"text"`
	Choices        json.RawMessage `gorm:"type:json" json:"choices"` // JSON: [4]string
	AnswerIndex    int             `gorm:"not null" json:"answerIndex"`
	Explanation    string          `gorm:"type:text" json:"explanation"`
	Category       string          `gorm:"size:64;index" json:"category"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

// Validate checks the shape invariant of a stored row: exactly four choices
// and an answer index inside them. A row that fails this is INVALID_DATA,
// not a lookup miss.
func (q *Question) Validate() error {
	var choices []string
	if err := json.Unmarshal(q.Choices, &choices); err != nil {
		return fmt.Errorf("question %s has malformed choices: %w", q.ID, err)
	}
	if len(choices) != 4 {
		return fmt.Errorf("question %s has %d choices, want 4", q.ID, len(choices))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex > 3 {
		return fmt.Errorf("question %s has answer index %d out of range", q.ID, q.AnswerIndex)
	}
	return nil
}
