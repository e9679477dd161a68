package model

import (
	"time"
)

// QuestionStatistic keeps one counter pair per (user, question). The row is
// created on the first answer and incremented in place afterwards.
// Invariant: CorrectCount + IncorrectCount equals the number of AnswerEvents
// for the pair.
// swagger:model QuestionStatistic
type QuestionStatistic struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID         string    `gorm:"size:64;not null;uniqueIndex:idx_user_question,priority:1" json:"userId"`
	QuestionID     string    `gorm:"size:64;not null;uniqueIndex:idx_user_question,priority:2" json:"questionId"`
	ExamType       ExamType  `gorm:"size:8;not null;index" json:"examType"`
	Category       string    `gorm:"size:64;index" json:"category"`
	CorrectCount   int       `gorm:"not null;default:0" json:"correctCount"`
	IncorrectCount int       `gorm:"not null;default:0" json:"incorrectCount"`
	LastAnsweredAt time.Time `gorm:"not null" json:"lastAnsweredAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (QuestionStatistic) TableName() string {
	return "question_statistics"
}

// ProficiencyLevel recomputes the mastery classification from the counters.
func (s *QuestionStatistic) ProficiencyLevel() ProficiencyLevel {
	return CalculateProficiencyLevel(s.CorrectCount, s.IncorrectCount)
}
