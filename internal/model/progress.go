package model

import "time"

// Progress 每个 (用户, 课程) 一条记录，completed_lessons 存已完成课时ID集合
type Progress struct {
	BaseModel
	UserID           uint     `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID         string   `gorm:"uniqueIndex:idx_user_course;size:64;not null" json:"courseId"`
	Percentage       int      `gorm:"default:0" json:"percentage"`
	CompletedLessons []string `gorm:"serializer:json" json:"completedLessons"`
}

func (Progress) TableName() string {
	return "progress"
}

// LessonEvent 课时完成流水，驱动“最近完成”列表
type LessonEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	CourseID  string    `gorm:"size:64" json:"courseId"`
	LessonID  string    `gorm:"size:64" json:"lessonId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (LessonEvent) TableName() string {
	return "lesson_events"
}
