package service

import (
	"exam_quiz_backend/internal/model"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// ConsecutiveStudyDays reduces the event log to the set of UTC calendar
// dates with at least one answer, then walks backward from today's date and
// counts until the first gap. A day with no answer today means the streak is
// zero. Dates in the future are skipped rather than breaking the walk.
func ConsecutiveStudyDays(events []model.AnswerEvent, now time.Time) int {
	if len(events) == 0 {
		return 0
	}

	seen := make(map[string]struct{})
	for _, event := range events {
		seen[event.AnsweredAt.UTC().Format(dayLayout)] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	nowUTC := now.UTC()
	expected := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for _, dateStr := range dates {
		date, err := time.Parse(dayLayout, dateStr)
		if err != nil {
			continue
		}

		diffDays := int(expected.Sub(date).Hours() / 24)
		switch {
		case diffDays == 0:
			streak++
			expected = date.AddDate(0, 0, -1)
		case diffDays > 0:
			// gap before this date, the streak ends here
			return streak
		default:
			// future-dated event, ignore
			continue
		}
	}

	return streak
}

// TodayAnsweredCount counts the distinct (examType, questionId) pairs
// answered on today's UTC date. Repeated answers to one question count once.
func TodayAnsweredCount(events []model.AnswerEvent, now time.Time) int {
	today := now.UTC().Format(dayLayout)

	seen := make(map[string]struct{})
	for _, event := range events {
		if event.AnsweredAt.UTC().Format(dayLayout) != today {
			continue
		}
		seen[string(event.ExamType)+"#"+event.QuestionID] = struct{}{}
	}
	return len(seen)
}
