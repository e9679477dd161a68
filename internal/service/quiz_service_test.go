package service

import (
	"errors"
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/internal/util"
	"fmt"
	"sync"
	"testing"
)

func newQuizFixture(questions ...model.Question) (*QuizService, *fakeEventStore, *fakeStatStore) {
	events := &fakeEventStore{}
	stats := newFakeStatStore()
	return NewQuizService(newFakeCatalog(questions...), events, stats), events, stats
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *util.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *util.AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestGetQuestionsValidation(t *testing.T) {
	svc, _, _ := newQuizFixture()

	if _, err := svc.GetQuestions("SG", 10); err == nil {
		t.Error("expected error for unknown exam type")
	} else {
		expectCode(t, err, util.CodeInvalidParameter)
	}

	if _, err := svc.GetQuestions("FE", 0); err == nil {
		t.Error("expected error for limit below 1")
	} else {
		expectCode(t, err, util.CodeInvalidParameter)
	}

	if _, err := svc.GetQuestions("FE", 51); err == nil {
		t.Error("expected error for limit above 50")
	} else {
		expectCode(t, err, util.CodeInvalidParameter)
	}
}

func TestGetQuestionsSampling(t *testing.T) {
	var pool []model.Question
	for i := 0; i < 5; i++ {
		pool = append(pool, newQuestion(fmt.Sprintf("q%d", i), model.ExamTypeFE, 0, "tech", "text"))
	}
	svc, _, _ := newQuizFixture(pool...)

	result, err := svc.GetQuestions("FE", 3)
	if err != nil {
		t.Fatalf("GetQuestions: %v", err)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("sample size = %d, want 3", len(result.Questions))
	}
	seen := make(map[string]bool)
	for _, q := range result.Questions {
		if seen[q.ID] {
			t.Errorf("question %s sampled twice in one draw", q.ID)
		}
		seen[q.ID] = true
	}

	// limit beyond the pool returns the whole pool
	result, err = svc.GetQuestions("FE", 50)
	if err != nil {
		t.Fatalf("GetQuestions: %v", err)
	}
	if len(result.Questions) != len(pool) {
		t.Fatalf("sample size = %d, want %d", len(result.Questions), len(pool))
	}

	// the shuffle is unseeded, so assert coverage over many draws rather
	// than any exact sequence
	covered := make(map[string]bool)
	for i := 0; i < 200; i++ {
		result, err := svc.GetQuestions("FE", 1)
		if err != nil {
			t.Fatalf("GetQuestions: %v", err)
		}
		covered[result.Questions[0].ID] = true
	}
	if len(covered) != len(pool) {
		t.Errorf("200 single-question draws covered %d of %d questions", len(covered), len(pool))
	}
}

func TestGetQuestionsDropsMalformedRows(t *testing.T) {
	broken := newQuestion("broken", model.ExamTypeFE, 0, "tech", "text")
	broken.Choices = []byte(`["a","b"]`)
	svc, _, _ := newQuizFixture(
		newQuestion("ok", model.ExamTypeFE, 0, "tech", "text"),
		broken,
	)

	result, err := svc.GetQuestions("FE", 50)
	if err != nil {
		t.Fatalf("GetQuestions: %v", err)
	}
	if len(result.Questions) != 1 || result.Questions[0].ID != "ok" {
		t.Fatalf("expected only the well-formed question, got %v", result.Questions)
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	svc, _, _ := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 2, "tech", "text"))

	_, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "", SelectedIndex: 0})
	expectCode(t, err, util.CodeInvalidParameter)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 4})
	expectCode(t, err, util.CodeInvalidParameter)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: -1})
	expectCode(t, err, util.CodeInvalidParameter)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "missing", SelectedIndex: 0})
	expectCode(t, err, util.CodeNotFound)
}

func TestSubmitAnswerRejectsMalformedQuestion(t *testing.T) {
	broken := newQuestion("q1", model.ExamTypeFE, 0, "tech", "text")
	broken.AnswerIndex = 7
	svc, _, _ := newQuizFixture(broken)

	_, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 0})
	expectCode(t, err, util.CodeInvalidData)
}

func TestSubmitAnswerCreatesThenIncrements(t *testing.T) {
	svc, events, stats := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 2, "network", "text"))

	result, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 2})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !result.IsCorrect || result.CorrectIndex != 2 {
		t.Fatalf("expected correct answer graded correct, got %+v", result)
	}
	if result.Stats.CorrectCount != 1 || result.Stats.IncorrectCount != 0 {
		t.Fatalf("first answer counts = (%d,%d), want (1,0)", result.Stats.CorrectCount, result.Stats.IncorrectCount)
	}

	result, err = svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 0})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.IsCorrect {
		t.Fatal("expected wrong answer graded incorrect")
	}
	if result.Stats.CorrectCount != 1 || result.Stats.IncorrectCount != 1 {
		t.Fatalf("second answer counts = (%d,%d), want (1,1)", result.Stats.CorrectCount, result.Stats.IncorrectCount)
	}

	// counter sum matches the event count
	userEvents, _ := events.FindByUser("u1")
	row, _ := stats.FindByUserAndQuestion("u1", "q1")
	if len(userEvents) != 2 {
		t.Fatalf("event count = %d, want 2", len(userEvents))
	}
	if row.CorrectCount+row.IncorrectCount != len(userEvents) {
		t.Fatalf("counter sum %d != event count %d", row.CorrectCount+row.IncorrectCount, len(userEvents))
	}
	if row.ExamType != model.ExamTypeFE || row.Category != "network" {
		t.Fatalf("stat row did not inherit question metadata: %+v", row)
	}
}

func TestSubmitAnswerMasteryScenario(t *testing.T) {
	svc, _, _ := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 1, "tech", "text"))

	var result *SubmitAnswerResult
	var err error
	for i := 0; i < 4; i++ {
		result, err = svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 1})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if result.Stats.CorrectCount != 4 || result.Stats.IncorrectCount != 0 {
		t.Fatalf("counts = (%d,%d), want (4,0)", result.Stats.CorrectCount, result.Stats.IncorrectCount)
	}
	if result.Stats.ProficiencyLevel != model.ProficiencyMaster {
		t.Fatalf("level = %q, want master", result.Stats.ProficiencyLevel)
	}
}

func TestSubmitAnswerConcurrentNoLostUpdates(t *testing.T) {
	svc, events, stats := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 0, "tech", "text"))

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: i % 4})
			if err != nil {
				t.Errorf("concurrent submit: %v", err)
			}
		}(i)
	}
	wg.Wait()

	row, err := stats.FindByUserAndQuestion("u1", "q1")
	if err != nil || row == nil {
		t.Fatalf("stat row missing after concurrent submits: %v", err)
	}
	if sum := row.CorrectCount + row.IncorrectCount; sum != n {
		t.Fatalf("counter sum = %d, want %d", sum, n)
	}

	userEvents, _ := events.FindByUser("u1")
	if len(userEvents) != n {
		t.Fatalf("event count = %d, want %d", len(userEvents), n)
	}
}

func TestSubmitAnswerEventAppendFailureLeavesStatsUntouched(t *testing.T) {
	svc, events, stats := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 0, "tech", "text"))
	events.createErr = errors.New("table unavailable")

	_, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 0})
	expectCode(t, err, util.CodeDatabaseError)

	row, _ := stats.FindByUserAndQuestion("u1", "q1")
	if row != nil {
		t.Fatalf("stats row created even though the event append failed: %+v", row)
	}
}

func TestSubmitAnswerStatsFailureKeepsEvent(t *testing.T) {
	svc, events, stats := newQuizFixture(newQuestion("q1", model.ExamTypeFE, 0, "tech", "text"))

	// first answer creates the row, then break the increment path
	if _, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 0}); err != nil {
		t.Fatalf("setup submit: %v", err)
	}
	stats.incrementErr = errors.New("conditional update failed")

	_, err := svc.SubmitAnswer(SubmitAnswerInput{UserID: "u1", QuestionID: "q1", SelectedIndex: 1})
	expectCode(t, err, util.CodeDatabaseError)

	// the event log stays the source of truth: the second event is durable
	// even though the counters are stale
	userEvents, _ := events.FindByUser("u1")
	if len(userEvents) != 2 {
		t.Fatalf("event count = %d, want 2", len(userEvents))
	}
	row, _ := stats.FindByUserAndQuestion("u1", "q1")
	if row.CorrectCount+row.IncorrectCount != 1 {
		t.Fatalf("counter sum = %d, want 1 (stale by one)", row.CorrectCount+row.IncorrectCount)
	}
}
