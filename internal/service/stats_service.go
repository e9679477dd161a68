package service

import (
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/internal/util"
	"exam_quiz_backend/pkg/logger"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// StatsService builds the dashboard summary and the per-question history
// view from the statistics rows, the event log and the catalog.
type StatsService struct {
	Questions QuestionCatalog
	Events    AnswerEventStore
	Stats     QuestionStatisticStore
}

func NewStatsService(questions QuestionCatalog, events AnswerEventStore, stats QuestionStatisticStore) *StatsService {
	return &StatsService{Questions: questions, Events: events, Stats: stats}
}

type ProficiencyBucket struct {
	Level      model.ProficiencyLevel `json:"level"`
	Label      string                 `json:"label"`
	Count      int                    `json:"count"`
	Percentage int                    `json:"percentage"`
}

type StatsSummary struct {
	AnsweredRatio           int                 `json:"answeredRatio"`
	ConsecutiveDays         int                 `json:"consecutiveDays"`
	ProficiencyDistribution []ProficiencyBucket `json:"proficiencyDistribution"`
	LastStudiedAt           *time.Time          `json:"lastStudiedAt"`
	TotalQuestions          int                 `json:"totalQuestions"`
	AnsweredQuestions       int                 `json:"answeredQuestions"`
	TodayAnsweredCount      int                 `json:"todayAnsweredCount"`
}

// GetSummary assembles the dashboard numbers for one user.
func (s *StatsService) GetSummary(userID string) (*StatsSummary, error) {
	feQuestions, err := s.Questions.FindByExamType(model.ExamTypeFE)
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch questions", err)
	}
	apQuestions, err := s.Questions.FindByExamType(model.ExamTypeAP)
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch questions", err)
	}
	totalQuestions := len(feQuestions) + len(apQuestions)

	stats, err := s.Stats.FindByUser(userID, "")
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch user stats", err)
	}

	events, err := s.Events.FindByUser(userID)
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch answer history", err)
	}

	answeredRatio := 0
	if totalQuestions > 0 {
		answeredRatio = int(math.Round(float64(len(stats)) / float64(totalQuestions) * 100))
	}

	now := time.Now().UTC()

	var lastStudiedAt *time.Time
	if len(events) > 0 {
		// events arrive most recent first
		lastStudiedAt = &events[0].AnsweredAt
	}

	return &StatsSummary{
		AnsweredRatio:           answeredRatio,
		ConsecutiveDays:         ConsecutiveStudyDays(events, now),
		ProficiencyDistribution: proficiencyDistribution(stats),
		LastStudiedAt:           lastStudiedAt,
		TotalQuestions:          totalQuestions,
		AnsweredQuestions:       len(stats),
		TodayAnsweredCount:      TodayAnsweredCount(events, now),
	}, nil
}

func proficiencyDistribution(stats []model.QuestionStatistic) []ProficiencyBucket {
	counts := make(map[model.ProficiencyLevel]int, len(model.ProficiencyLevels))
	for _, stat := range stats {
		counts[stat.ProficiencyLevel()]++
	}

	total := len(stats)
	buckets := make([]ProficiencyBucket, 0, len(model.ProficiencyLevels))
	for _, level := range model.ProficiencyLevels {
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(counts[level]) / float64(total) * 100))
		}
		buckets = append(buckets, ProficiencyBucket{
			Level:      level,
			Label:      model.ProficiencyLevelLabel[level],
			Count:      counts[level],
			Percentage: percentage,
		})
	}
	return buckets
}

const questionTextLimit = 100

type HistoryFilter struct {
	Category         string
	ProficiencyLevel string
	ExamType         string
}

type HistoryItem struct {
	QuestionID       string                 `json:"questionId"`
	QuestionText     string                 `json:"questionText"`
	ExamType         model.ExamType         `json:"examType"`
	Category         string                 `json:"category"`
	CorrectCount     int                    `json:"correctCount"`
	IncorrectCount   int                    `json:"incorrectCount"`
	ProficiencyLevel model.ProficiencyLevel `json:"proficiencyLevel"`
	ProficiencyLabel string                 `json:"proficiencyLabel"`
	LastAnsweredAt   time.Time              `json:"lastAnsweredAt"`
}

type HistoryView struct {
	Items []HistoryItem `json:"items"`
	Total int           `json:"total"`
}

// GetHistory lists a user's answered questions with their classification,
// filtered by exam type (at the storage layer), category and proficiency
// level, most recently studied first.
func (s *StatsService) GetHistory(userID string, filter HistoryFilter) (*HistoryView, error) {
	if filter.ExamType != "" && !model.ExamType(filter.ExamType).Valid() {
		return nil, util.InvalidParameter("examType must be FE or AP")
	}
	if filter.ProficiencyLevel != "" && !model.ProficiencyLevel(filter.ProficiencyLevel).Valid() {
		return nil, util.InvalidParameter("proficiencyLevel is not a known level")
	}

	stats, err := s.Stats.FindByUser(userID, model.ExamType(filter.ExamType))
	if err != nil {
		return nil, util.DatabaseError("Failed to fetch user stats", err)
	}

	items := make([]HistoryItem, 0, len(stats))
	for _, stat := range stats {
		if filter.Category != "" && stat.Category != filter.Category {
			continue
		}

		level := stat.ProficiencyLevel()
		if filter.ProficiencyLevel != "" && level != model.ProficiencyLevel(filter.ProficiencyLevel) {
			continue
		}

		question, err := s.Questions.FindByID(stat.QuestionID)
		if err != nil {
			return nil, util.DatabaseError("Failed to fetch question", err)
		}
		if question == nil {
			// catalog and statistics can drift during a reseed
			logger.Log.Warn("question missing from catalog, skipping history row",
				zap.String("questionId", stat.QuestionID))
			continue
		}

		items = append(items, HistoryItem{
			QuestionID:       stat.QuestionID,
			QuestionText:     truncateText(question.Text, questionTextLimit),
			ExamType:         stat.ExamType,
			Category:         stat.Category,
			CorrectCount:     stat.CorrectCount,
			IncorrectCount:   stat.IncorrectCount,
			ProficiencyLevel: level,
			ProficiencyLabel: model.ProficiencyLevelLabel[level],
			LastAnsweredAt:   stat.LastAnsweredAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].LastAnsweredAt.After(items[j].LastAnsweredAt)
	})

	return &HistoryView{Items: items, Total: len(items)}, nil
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
