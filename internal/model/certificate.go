package model

import "time"

// Certificate 结业证书，(student_id, course_id) 唯一，签发后不可变
type Certificate struct {
	BaseModel
	StudentID   uint      `gorm:"uniqueIndex:idx_student_course;not null" json:"studentId"`
	CourseID    string    `gorm:"uniqueIndex:idx_student_course;size:64;not null" json:"courseId"`
	StudentName string    `gorm:"size:100" json:"studentName"`
	CourseName  string    `gorm:"size:255" json:"courseName"`
	Percentage  int       `gorm:"not null" json:"percentage"`
	IssuedAt    time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
