package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(userID uint, courseID string) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("user_id = ?", userID).Order("course_id").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Create(p *model.Progress) error {
	return r.DB.Create(p).Error
}

func (r *ProgressRepository) Save(p *model.Progress) error {
	return r.DB.Save(p).Error
}

func (r *ProgressRepository) LogLessonEvent(event *model.LessonEvent) error {
	return r.DB.Create(event).Error
}

func (r *ProgressRepository) RecentLessonEvents(userID uint, limit int) ([]model.LessonEvent, error) {
	var events []model.LessonEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// StudentAverage 学生维度的平均进度（管理员/教师视图）
type StudentAverage struct {
	UserID            uint    `json:"userId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	CourseCount       int     `json:"courseCount"`
	AveragePercentage float64 `json:"averagePercentage"`
}

func (r *ProgressRepository) AverageByStudent() ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.DB.Model(&model.Progress{}).
		Select("progress.user_id AS user_id, users.name AS name, users.email AS email, COUNT(*) AS course_count, AVG(progress.percentage) AS average_percentage").
		Joins("JOIN users ON users.id = progress.user_id").
		Where("users.role = ?", model.Student).
		Group("progress.user_id, users.name, users.email").
		Order("average_percentage DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProgressRepository) AverageForUser(userID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ?", userID).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
