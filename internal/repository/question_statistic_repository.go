package repository

import (
	"errors"
	"exam_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// QuestionStatisticRepository persists the per-(user, question) counter rows.
type QuestionStatisticRepository struct {
	DB *gorm.DB
}

func NewQuestionStatisticRepository(db *gorm.DB) *QuestionStatisticRepository {
	return &QuestionStatisticRepository{DB: db}
}

// FindByUserAndQuestion returns (nil, nil) when no row exists yet; an absent
// row is a valid state, not a failure.
func (r *QuestionStatisticRepository) FindByUserAndQuestion(userID, questionID string) (*model.QuestionStatistic, error) {
	var stat model.QuestionStatistic
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// FindByUser lists a user's statistics rows, optionally narrowed to one exam
// type at the query level.
func (r *QuestionStatisticRepository) FindByUser(userID string, examType model.ExamType) ([]model.QuestionStatistic, error) {
	query := r.DB.Where("user_id = ?", userID)
	if examType != "" {
		query = query.Where("exam_type = ?", examType)
	}

	var stats []model.QuestionStatistic
	if err := query.Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *QuestionStatisticRepository) Create(stat *model.QuestionStatistic) error {
	return r.DB.Create(stat).Error
}

// IncrementAnswer bumps exactly one counter and refreshes the answered/updated
// timestamps in a single UPDATE, so concurrent submissions for the same pair
// cannot lose updates. The fresh row is read back after the update.
func (r *QuestionStatisticRepository) IncrementAnswer(userID, questionID string, isCorrect bool) (*model.QuestionStatistic, error) {
	column := "incorrect_count"
	if isCorrect {
		column = "correct_count"
	}

	now := time.Now().UTC()
	tx := r.DB.Model(&model.QuestionStatistic{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Updates(map[string]interface{}{
			column:             gorm.Expr(column + " + 1"),
			"last_answered_at": now,
			"updated_at":       now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var stat model.QuestionStatistic
	if err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&stat).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}
