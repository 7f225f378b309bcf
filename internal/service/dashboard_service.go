package service

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DashboardService 聚合学习概览，结果在 Redis 缓存60秒
type DashboardService struct {
	ProgressRepo *repository.ProgressRepository
	CertRepo     *repository.CertificateRepository
	Catalog      catalog.Repository
	Redis        *redis.Client
}

func NewDashboardService(progressRepo *repository.ProgressRepository, certRepo *repository.CertificateRepository, cat catalog.Repository, redisClient *redis.Client) *DashboardService {
	return &DashboardService{
		ProgressRepo: progressRepo,
		CertRepo:     certRepo,
		Catalog:      cat,
		Redis:        redisClient,
	}
}

// RecentLesson 最近完成的课时条目
type RecentLesson struct {
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	LessonID    string    `json:"lessonId"`
	LessonTitle string    `json:"lessonTitle"`
	CompletedAt time.Time `json:"completedAt"`
}

// DashboardData 学生个人学习概览
type DashboardData struct {
	EnrolledCourses  int            `json:"enrolledCourses"`
	CompletedCourses int            `json:"completedCourses"`
	AverageProgress  float64        `json:"averageProgress"`
	Certificates     int            `json:"certificates"`
	RecentLessons    []RecentLesson `json:"recentLessons"`
}

func (s *DashboardService) GetDashboard(userID uint) (*DashboardData, error) {
	cacheKey := fmt.Sprintf("dashboard:%d", userID)

	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var data DashboardData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return &data, nil
			}
		}
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		EnrolledCourses: len(records),
		RecentLessons:   []RecentLesson{},
	}

	for _, p := range records {
		if p.Percentage >= 100 {
			data.CompletedCourses++
		}
	}

	avg, err := s.ProgressRepo.AverageForUser(userID)
	if err != nil {
		return nil, err
	}
	data.AverageProgress = avg

	certCount, err := s.CertRepo.CountByStudent(userID)
	if err != nil {
		return nil, err
	}
	data.Certificates = int(certCount)

	events, err := s.ProgressRepo.RecentLessonEvents(userID, 5)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		item := RecentLesson{
			CourseID:    event.CourseID,
			LessonID:    event.LessonID,
			CompletedAt: event.CreatedAt,
		}
		if course, ok := s.Catalog.Course(event.CourseID); ok {
			item.CourseTitle = course.Title
		}
		if lesson, ok := s.Catalog.Lesson(event.CourseID, event.LessonID); ok {
			item.LessonTitle = lesson.Title
		}
		data.RecentLessons = append(data.RecentLessons, item)
	}

	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if payload, err := json.Marshal(data); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, 60*time.Second)
		}
	}

	return data, nil
}

// TeacherOverview 教师/管理员侧的全体学生概览
type TeacherOverview struct {
	Students []repository.StudentAverage `json:"students"`
	Courses  int                         `json:"courses"`
}

func (s *DashboardService) GetTeacherOverview() (*TeacherOverview, error) {
	students, err := s.ProgressRepo.AverageByStudent()
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []repository.StudentAverage{}
	}
	return &TeacherOverview{
		Students: students,
		Courses:  len(s.Catalog.Courses()),
	}, nil
}
