package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) Find(studentID uint, courseID string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&cert).Error
	return &cert, err
}

func (r *CertificateRepository) FindByStudent(studentID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("student_id = ?", studentID).Order("issued_at DESC").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}
