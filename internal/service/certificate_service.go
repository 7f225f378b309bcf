package service

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CertificateService 结业证书登记，同一学生同一课程只发一张
type CertificateService struct {
	CertRepo       *repository.CertificateRepository
	QuizResultRepo *repository.QuizResultRepository
	UserRepo       *repository.UserRepository
	Catalog        catalog.Repository
}

func NewCertificateService(certRepo *repository.CertificateRepository, quizResultRepo *repository.QuizResultRepository, userRepo *repository.UserRepository, cat catalog.Repository) *CertificateService {
	return &CertificateService{
		CertRepo:       certRepo,
		QuizResultRepo: quizResultRepo,
		UserRepo:       userRepo,
		Catalog:        cat,
	}
}

// Issue 签发证书。学生身份取自令牌，课程名取自目录，成绩取自服务端存档的
// 最近一次通过记录，请求体里的姓名/分数一律不采信。
func (s *CertificateService) Issue(studentID uint, courseID string) (*model.Certificate, error) {
	course, ok := s.Catalog.Course(courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.CertRepo.Find(studentID, courseID); err == nil {
		return nil, util.ErrCertificateExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passed, err := s.QuizResultRepo.LatestPassedForCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotPassed
		}
		return nil, err
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	cert := &model.Certificate{
		StudentID:   studentID,
		CourseID:    courseID,
		StudentName: student.Name,
		CourseName:  course.Title,
		Percentage:  passed.Percentage,
		IssuedAt:    time.Now(),
	}

	if err := s.CertRepo.Create(cert); err != nil {
		// 并发双发时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrCertificateExists
		}
		return nil, err
	}
	return cert, nil
}

// ListForStudent 查询某学生的全部证书
func (s *CertificateService) ListForStudent(studentID uint) ([]model.Certificate, error) {
	return s.CertRepo.FindByStudent(studentID)
}
