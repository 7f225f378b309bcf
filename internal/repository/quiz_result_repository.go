package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) Latest(userID uint, quizID string) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		First(&result).Error
	return &result, err
}

// LatestPassedForCourse 该用户在某课程下最近一次通过的测验结果
func (r *QuizResultRepository) LatestPassedForCourse(userID uint, courseID string) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND course_id = ? AND passed = ?", userID, courseID, true).
		Order("created_at DESC").
		First(&result).Error
	return &result, err
}
