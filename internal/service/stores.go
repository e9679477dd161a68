package service

import (
	"exam_quiz_backend/internal/model"
)

// Storage collaborators are declared on the consumer side so the services
// can be constructed with in-memory fakes in tests. The gorm repositories
// under internal/repository satisfy them.

// QuestionCatalog is the read-only question source.
type QuestionCatalog interface {
	// FindByID returns (nil, nil) for an unknown id.
	FindByID(id string) (*model.Question, error)
	FindByExamType(examType model.ExamType) ([]model.Question, error)
}

// AnswerEventStore is the append-only answer log.
type AnswerEventStore interface {
	Create(event *model.AnswerEvent) error
	// FindByUser returns events most recent first.
	FindByUser(userID string) ([]model.AnswerEvent, error)
}

// QuestionStatisticStore holds the per-(user, question) counter rows.
type QuestionStatisticStore interface {
	// FindByUserAndQuestion returns (nil, nil) when no row exists.
	FindByUserAndQuestion(userID, questionID string) (*model.QuestionStatistic, error)
	// FindByUser lists rows, optionally filtered by exam type ("" = all).
	FindByUser(userID string, examType model.ExamType) ([]model.QuestionStatistic, error)
	Create(stat *model.QuestionStatistic) error
	// IncrementAnswer atomically bumps one counter of an existing row.
	IncrementAnswer(userID, questionID string, isCorrect bool) (*model.QuestionStatistic, error)
}
