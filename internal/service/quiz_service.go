package service

import (
	"errors"
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/internal/util"
	"exam_quiz_backend/pkg/logger"
	"exam_quiz_backend/pkg/monitoring"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minSampleSize = 1
	maxSampleSize = 50
)

// QuizService serves question samples and grades submissions.
type QuizService struct {
	Questions QuestionCatalog
	Events    AnswerEventStore
	Stats     QuestionStatisticStore
}

func NewQuizService(questions QuestionCatalog, events AnswerEventStore, stats QuestionStatisticStore) *QuizService {
	return &QuizService{Questions: questions, Events: events, Stats: stats}
}

type SampledQuestions struct {
	Questions []model.Question `json:"questions"`
}

// GetQuestions returns a random sample of up to limit questions for one exam
// type. The shuffle is unseeded; callers get a different order every time.
func (s *QuizService) GetQuestions(examType string, limit int) (*SampledQuestions, error) {
	if !model.ExamType(examType).Valid() {
		return nil, util.InvalidParameter("exam must be FE or AP")
	}
	if limit < minSampleSize || limit > maxSampleSize {
		return nil, util.InvalidParameter("limit must be between 1 and 50")
	}

	all, err := s.Questions.FindByExamType(model.ExamType(examType))
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch questions", err)
	}

	// Rows that fail their shape invariant are dropped from samples; the
	// catalog and this service can drift during a reseed.
	valid := make([]model.Question, 0, len(all))
	for _, q := range all {
		if err := q.Validate(); err != nil {
			logger.Log.Warn("skipping malformed catalog row", zap.Error(err))
			continue
		}
		valid = append(valid, q)
	}

	return &SampledQuestions{Questions: randomSample(valid, limit)}, nil
}

func randomSample(questions []model.Question, count int) []model.Question {
	shuffled := make([]model.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

type SubmitAnswerInput struct {
	UserID        string
	QuestionID    string
	SelectedIndex int
}

type SubmitAnswerResult struct {
	IsCorrect    bool        `json:"isCorrect"`
	CorrectIndex int         `json:"correctIndex"`
	Explanation  string      `json:"explanation"`
	Stats        AnswerStats `json:"stats"`
}

type AnswerStats struct {
	CorrectCount     int                    `json:"correctCount"`
	IncorrectCount   int                    `json:"incorrectCount"`
	ProficiencyLevel model.ProficiencyLevel `json:"proficiencyLevel"`
}

// SubmitAnswer grades a submission, appends the answer event, then updates
// the statistics row. The event is durably written before the counters are
// touched: if the counter update fails the event log stays the source of
// truth and the statistics row is merely stale.
func (s *QuizService) SubmitAnswer(in SubmitAnswerInput) (*SubmitAnswerResult, error) {
	if in.QuestionID == "" {
		return nil, util.InvalidParameter("questionId is required")
	}
	if in.SelectedIndex < 0 || in.SelectedIndex > 3 {
		return nil, util.InvalidParameter("selectedIndex must be between 0 and 3")
	}

	question, err := s.Questions.FindByID(in.QuestionID)
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch question", err)
	}
	if question == nil {
		return nil, util.NotFoundError("Question not found")
	}
	if err := question.Validate(); err != nil {
		return nil, &util.AppError{Code: util.CodeInvalidData, Message: "Stored question is malformed", Err: err}
	}

	isCorrect := question.AnswerIndex == in.SelectedIndex
	monitoring.AnswerCounter.WithLabelValues(string(question.ExamType), strconv.FormatBool(isCorrect)).Inc()

	event := &model.AnswerEvent{
		UserID:        in.UserID,
		QuestionID:    in.QuestionID,
		ExamType:      question.ExamType,
		Category:      question.Category,
		IsCorrect:     isCorrect,
		SelectedIndex: in.SelectedIndex,
		AnsweredAt:    time.Now().UTC(),
	}
	if err := s.Events.Create(event); err != nil {
		return nil, util.DatabaseError("Failed to save answer history", err)
	}

	stat, err := s.recordAnswer(in.UserID, in.QuestionID, question.ExamType, question.Category, isCorrect)
	if err != nil {
		// The event is already durable; the row can be reconciled from the
		// log later.
		logger.Log.Error("statistics update failed after event append",
			zap.String("userId", in.UserID),
			zap.String("questionId", in.QuestionID),
			zap.Error(err),
		)
		return nil, util.DatabaseError("Failed to update question stats", err)
	}

	return &SubmitAnswerResult{
		IsCorrect:    isCorrect,
		CorrectIndex: question.AnswerIndex,
		Explanation:  question.Explanation,
		Stats: AnswerStats{
			CorrectCount:     stat.CorrectCount,
			IncorrectCount:   stat.IncorrectCount,
			ProficiencyLevel: stat.ProficiencyLevel(),
		},
	}, nil
}

// recordAnswer is the create-vs-increment branch: first answer creates the
// row with counts (1,0) or (0,1), later answers go through the atomic
// increment. Two first answers can race; the loser of the unique-index race
// falls back to incrementing.
func (s *QuizService) recordAnswer(userID, questionID string, examType model.ExamType, category string, isCorrect bool) (*model.QuestionStatistic, error) {
	existing, err := s.Stats.FindByUserAndQuestion(userID, questionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.Stats.IncrementAnswer(userID, questionID, isCorrect)
	}

	now := time.Now().UTC()
	stat := &model.QuestionStatistic{
		UserID:         userID,
		QuestionID:     questionID,
		ExamType:       examType,
		Category:       category,
		LastAnsweredAt: now,
	}
	if isCorrect {
		stat.CorrectCount = 1
	} else {
		stat.IncorrectCount = 1
	}

	err = s.Stats.Create(stat)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.Stats.IncrementAnswer(userID, questionID, isCorrect)
	}
	if err != nil {
		return nil, err
	}
	return stat, nil
}
