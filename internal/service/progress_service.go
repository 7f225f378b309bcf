package service

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"errors"
	"math"

	"gorm.io/gorm"
)

// ProgressService 学习进度台账：记录已完成课时并推导完成百分比
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	Catalog      catalog.Repository
}

func NewProgressService(progressRepo *repository.ProgressRepository, cat catalog.Repository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		Catalog:      cat,
	}
}

// Enroll 报名课程，已有进度记录时直接返回现有记录
func (s *ProgressService) Enroll(userID uint, courseID string) (*model.Progress, error) {
	if _, ok := s.Catalog.Course(courseID); !ok {
		return nil, util.ErrCourseNotFound
	}

	existing, err := s.ProgressRepo.Find(userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.Progress{
		UserID:           userID,
		CourseID:         courseID,
		Percentage:       0,
		CompletedLessons: []string{},
	}
	if err := s.ProgressRepo.Create(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgress 查询进度，没有记录时返回零值进度而不是 404
func (s *ProgressService) GetProgress(userID uint, courseID string) (*model.Progress, error) {
	if _, ok := s.Catalog.Course(courseID); !ok {
		return nil, util.ErrCourseNotFound
	}

	progress, err := s.ProgressRepo.Find(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Progress{
				UserID:           userID,
				CourseID:         courseID,
				Percentage:       0,
				CompletedLessons: []string{},
			}, nil
		}
		return nil, err
	}
	if progress.CompletedLessons == nil {
		progress.CompletedLessons = []string{}
	}
	return progress, nil
}

// CompleteLesson 标记课时完成。重复提交同一课时不改变台账（幂等）。
func (s *ProgressService) CompleteLesson(userID uint, courseID, lessonID string) (*model.Progress, error) {
	course, ok := s.Catalog.Course(courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	if _, ok := s.Catalog.Lesson(courseID, lessonID); !ok {
		return nil, util.ErrLessonNotFound
	}

	progress, err := s.ProgressRepo.Find(userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.Progress{
			UserID:           userID,
			CourseID:         courseID,
			CompletedLessons: []string{},
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
	}

	for _, id := range progress.CompletedLessons {
		if id == lessonID {
			return progress, nil
		}
	}

	progress.CompletedLessons = append(progress.CompletedLessons, lessonID)
	progress.Percentage = completionPercentage(countInCatalog(progress.CompletedLessons, course), len(course.Lessons))

	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	s.ProgressRepo.LogLessonEvent(&model.LessonEvent{
		UserID:   userID,
		CourseID: courseID,
		LessonID: lessonID,
	})

	return progress, nil
}

// SetProgress 客户端直报百分比（如视频播放位置），钳制到 [0,100]
func (s *ProgressService) SetProgress(userID uint, courseID string, percentage int) (*model.Progress, error) {
	if _, ok := s.Catalog.Course(courseID); !ok {
		return nil, util.ErrCourseNotFound
	}

	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	progress, err := s.ProgressRepo.Find(userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.Progress{
			UserID:           userID,
			CourseID:         courseID,
			CompletedLessons: []string{},
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
	}

	// 直报只允许推进，不允许回退已达成的进度
	if percentage > progress.Percentage {
		progress.Percentage = percentage
		if err := s.ProgressRepo.Save(progress); err != nil {
			return nil, err
		}
	}
	return progress, nil
}

// CourseProgressItem 单门课程的进度视图
type CourseProgressItem struct {
	CourseID         string   `json:"courseId"`
	CourseTitle      string   `json:"courseTitle"`
	Percentage       int      `json:"percentage"`
	CompletedLessons []string `json:"completedLessons"`
	TotalLessons     int      `json:"totalLessons"`
}

// AggregateForUser 汇总某用户全部课程的进度
func (s *ProgressService) AggregateForUser(userID uint) ([]CourseProgressItem, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]CourseProgressItem, 0, len(records))
	for _, p := range records {
		item := CourseProgressItem{
			CourseID:         p.CourseID,
			Percentage:       p.Percentage,
			CompletedLessons: p.CompletedLessons,
		}
		if item.CompletedLessons == nil {
			item.CompletedLessons = []string{}
		}
		if course, ok := s.Catalog.Course(p.CourseID); ok {
			item.CourseTitle = course.Title
			item.TotalLessons = len(course.Lessons)
		}
		items = append(items, item)
	}
	return items, nil
}

// AggregateAcrossStudents 教师/管理员查看全体学生的平均进度
func (s *ProgressService) AggregateAcrossStudents() ([]repository.StudentAverage, error) {
	return s.ProgressRepo.AverageByStudent()
}

// 已完成集合里可能残留目录中已下线的课时ID，分子只数仍在目录里的
func countInCatalog(completed []string, course *catalog.Course) int {
	ids := make(map[string]bool, len(course.Lessons))
	for _, l := range course.Lessons {
		ids[l.ID] = true
	}
	n := 0
	for _, id := range completed {
		if ids[id] {
			n++
		}
	}
	return n
}

// completionPercentage = min(100, round(100 * completed / total))，total 为0时按1计避免除零
func completionPercentage(completed, total int) int {
	if total <= 0 {
		total = 1
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct > 100 {
		pct = 100
	}
	return pct
}
