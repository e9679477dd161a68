package service

import (
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/internal/util"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newStatsFixture(questions ...model.Question) (*StatsService, *fakeEventStore, *fakeStatStore) {
	events := &fakeEventStore{}
	stats := newFakeStatStore()
	return NewStatsService(newFakeCatalog(questions...), events, stats), events, stats
}

func statRow(userID, questionID string, examType model.ExamType, category string, correct, incorrect int, lastAnsweredAt time.Time) *model.QuestionStatistic {
	return &model.QuestionStatistic{
		UserID:         userID,
		QuestionID:     questionID,
		ExamType:       examType,
		Category:       category,
		CorrectCount:   correct,
		IncorrectCount: incorrect,
		LastAnsweredAt: lastAnsweredAt,
	}
}

func TestGetSummary(t *testing.T) {
	var catalog []model.Question
	for i := 0; i < 10; i++ {
		catalog = append(catalog, newQuestion(fmt.Sprintf("fe%d", i), model.ExamTypeFE, 0, "tech", "text"))
	}
	svc, events, stats := newStatsFixture(catalog...)

	answeredAt := time.Now().UTC()
	if err := stats.Create(statRow("u1", "fe0", model.ExamTypeFE, "tech", 4, 0, answeredAt)); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	if err := events.Create(&model.AnswerEvent{
		UserID:     "u1",
		QuestionID: "fe0",
		ExamType:   model.ExamTypeFE,
		IsCorrect:  true,
		AnsweredAt: answeredAt,
	}); err != nil {
		t.Fatalf("seed events: %v", err)
	}

	summary, err := svc.GetSummary("u1")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if summary.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", summary.TotalQuestions)
	}
	if summary.AnsweredQuestions != 1 {
		t.Errorf("AnsweredQuestions = %d, want 1", summary.AnsweredQuestions)
	}
	if summary.AnsweredRatio != 10 {
		t.Errorf("AnsweredRatio = %d, want 10", summary.AnsweredRatio)
	}
	if summary.ConsecutiveDays != 1 {
		t.Errorf("ConsecutiveDays = %d, want 1", summary.ConsecutiveDays)
	}
	if summary.TodayAnsweredCount != 1 {
		t.Errorf("TodayAnsweredCount = %d, want 1", summary.TodayAnsweredCount)
	}
	if summary.LastStudiedAt == nil || !summary.LastStudiedAt.Equal(answeredAt) {
		t.Errorf("LastStudiedAt = %v, want %v", summary.LastStudiedAt, answeredAt)
	}

	if len(summary.ProficiencyDistribution) != len(model.ProficiencyLevels) {
		t.Fatalf("distribution has %d buckets, want %d", len(summary.ProficiencyDistribution), len(model.ProficiencyLevels))
	}
	for _, bucket := range summary.ProficiencyDistribution {
		switch bucket.Level {
		case model.ProficiencyMaster:
			if bucket.Count != 1 || bucket.Percentage != 100 {
				t.Errorf("master bucket = %+v, want count 1 percentage 100", bucket)
			}
		default:
			if bucket.Count != 0 || bucket.Percentage != 0 {
				t.Errorf("%s bucket = %+v, want zero", bucket.Level, bucket)
			}
		}
	}
}

func TestGetSummaryNewUser(t *testing.T) {
	svc, _, _ := newStatsFixture(newQuestion("fe0", model.ExamTypeFE, 0, "tech", "text"))

	summary, err := svc.GetSummary("nobody")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if summary.AnsweredRatio != 0 || summary.AnsweredQuestions != 0 {
		t.Errorf("expected zero progress, got ratio %d answered %d", summary.AnsweredRatio, summary.AnsweredQuestions)
	}
	if summary.ConsecutiveDays != 0 || summary.TodayAnsweredCount != 0 {
		t.Errorf("expected zero activity, got streak %d today %d", summary.ConsecutiveDays, summary.TodayAnsweredCount)
	}
	if summary.LastStudiedAt != nil {
		t.Errorf("LastStudiedAt = %v, want nil", summary.LastStudiedAt)
	}
	for _, bucket := range summary.ProficiencyDistribution {
		if bucket.Count != 0 || bucket.Percentage != 0 {
			t.Errorf("%s bucket = %+v, want zero", bucket.Level, bucket)
		}
	}
}

func TestGetSummaryEmptyCatalog(t *testing.T) {
	svc, _, _ := newStatsFixture()

	summary, err := svc.GetSummary("u1")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.AnsweredRatio != 0 || summary.TotalQuestions != 0 {
		t.Errorf("empty catalog should yield zero ratio, got %+v", summary)
	}
}

func TestGetHistoryFilterValidation(t *testing.T) {
	svc, _, _ := newStatsFixture()

	_, err := svc.GetHistory("u1", HistoryFilter{ExamType: "SG"})
	expectCode(t, err, util.CodeInvalidParameter)

	_, err = svc.GetHistory("u1", HistoryFilter{ProficiencyLevel: "expert"})
	expectCode(t, err, util.CodeInvalidParameter)
}

func TestGetHistoryFilters(t *testing.T) {
	svc, _, stats := newStatsFixture(
		newQuestion("fe-net", model.ExamTypeFE, 0, "network", "network question"),
		newQuestion("fe-db", model.ExamTypeFE, 0, "database", "database question"),
		newQuestion("ap-net", model.ExamTypeAP, 0, "network", "ap network question"),
	)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := []*model.QuestionStatistic{
		statRow("u1", "fe-net", model.ExamTypeFE, "network", 4, 0, base),              // master
		statRow("u1", "fe-db", model.ExamTypeFE, "database", 0, 4, base.Add(time.Hour)), // very-weak
		statRow("u1", "ap-net", model.ExamTypeAP, "network", 1, 1, base.Add(2*time.Hour)), // neutral
	}
	for _, row := range rows {
		if err := stats.Create(row); err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	view, err := svc.GetHistory("u1", HistoryFilter{})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if view.Total != 3 || len(view.Items) != 3 {
		t.Fatalf("unfiltered history has %d items, want 3", view.Total)
	}
	// most recently studied first
	for i := 1; i < len(view.Items); i++ {
		if view.Items[i].LastAnsweredAt.After(view.Items[i-1].LastAnsweredAt) {
			t.Errorf("history not sorted by LastAnsweredAt descending: %v before %v",
				view.Items[i-1].LastAnsweredAt, view.Items[i].LastAnsweredAt)
		}
	}

	view, err = svc.GetHistory("u1", HistoryFilter{ExamType: "FE"})
	if err != nil {
		t.Fatalf("GetHistory exam filter: %v", err)
	}
	if view.Total != 2 {
		t.Fatalf("FE history has %d items, want 2", view.Total)
	}
	for _, item := range view.Items {
		if item.ExamType != model.ExamTypeFE {
			t.Errorf("FE filter returned %s row %s", item.ExamType, item.QuestionID)
		}
	}

	view, err = svc.GetHistory("u1", HistoryFilter{Category: "network"})
	if err != nil {
		t.Fatalf("GetHistory category filter: %v", err)
	}
	if view.Total != 2 {
		t.Fatalf("network history has %d items, want 2", view.Total)
	}

	view, err = svc.GetHistory("u1", HistoryFilter{ProficiencyLevel: "master"})
	if err != nil {
		t.Fatalf("GetHistory proficiency filter: %v", err)
	}
	if view.Total != 1 || view.Items[0].QuestionID != "fe-net" {
		t.Fatalf("master history = %+v, want only fe-net", view.Items)
	}
	if view.Items[0].ProficiencyLabel != model.ProficiencyLevelLabel[model.ProficiencyMaster] {
		t.Errorf("master label = %q", view.Items[0].ProficiencyLabel)
	}
	// re-classifying the returned counts yields the filter level
	for _, item := range view.Items {
		if got := model.CalculateProficiencyLevel(item.CorrectCount, item.IncorrectCount); got != model.ProficiencyMaster {
			t.Errorf("returned row %s classifies as %q under its own counts", item.QuestionID, got)
		}
	}

	view, err = svc.GetHistory("u1", HistoryFilter{ExamType: "AP", Category: "database"})
	if err != nil {
		t.Fatalf("GetHistory combined filter: %v", err)
	}
	if view.Total != 0 {
		t.Fatalf("contradictory filters returned %d items, want 0", view.Total)
	}
}

func TestGetHistorySkipsMissingQuestions(t *testing.T) {
	svc, _, stats := newStatsFixture(newQuestion("fe0", model.ExamTypeFE, 0, "tech", "text"))

	now := time.Now().UTC()
	if err := stats.Create(statRow("u1", "fe0", model.ExamTypeFE, "tech", 1, 0, now)); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	if err := stats.Create(statRow("u1", "gone", model.ExamTypeFE, "tech", 1, 0, now)); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	view, err := svc.GetHistory("u1", HistoryFilter{})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if view.Total != 1 || view.Items[0].QuestionID != "fe0" {
		t.Fatalf("expected the orphaned row to be skipped, got %+v", view.Items)
	}
}

func TestGetHistoryTruncatesQuestionText(t *testing.T) {
	long := newQuestion("long", model.ExamTypeFE, 0, "tech", strings.Repeat("x", 150))
	short := newQuestion("short", model.ExamTypeFE, 0, "tech", strings.Repeat("y", 50))
	svc, _, stats := newStatsFixture(long, short)

	now := time.Now().UTC()
	if err := stats.Create(statRow("u1", "long", model.ExamTypeFE, "tech", 1, 0, now)); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	if err := stats.Create(statRow("u1", "short", model.ExamTypeFE, "tech", 1, 0, now.Add(-time.Minute))); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	view, err := svc.GetHistory("u1", HistoryFilter{})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}

	byID := make(map[string]HistoryItem)
	for _, item := range view.Items {
		byID[item.QuestionID] = item
	}

	want := strings.Repeat("x", 100) + "..."
	if got := byID["long"].QuestionText; got != want {
		t.Errorf("long text = %q (len %d), want 100 chars plus ellipsis", got, len(got))
	}
	if got := byID["short"].QuestionText; got != strings.Repeat("y", 50) {
		t.Errorf("short text was altered: %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 100); got != "hello" {
		t.Errorf("truncateText under the limit = %q", got)
	}
	exact := strings.Repeat("a", 100)
	if got := truncateText(exact, 100); got != exact {
		t.Errorf("truncateText at the limit must not append an ellipsis, got %q", got)
	}
	// limit counts runes, not bytes
	kana := strings.Repeat("あ", 101)
	got := truncateText(kana, 100)
	if got != strings.Repeat("あ", 100)+"..." {
		t.Errorf("multibyte truncation = %q", got)
	}
}
