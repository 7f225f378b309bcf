package model

// QuizResult 存储一次测验提交的评分结果
type QuizResult struct {
	BaseModel
	UserID     uint              `gorm:"index" json:"userId"`
	QuizID     string            `gorm:"index;size:64" json:"quizId"`
	CourseID   string            `gorm:"size:64" json:"courseId"`
	Earned     int               `gorm:"not null" json:"earned"`
	Total      int               `gorm:"not null" json:"total"`
	Percentage int               `gorm:"not null" json:"percentage"`
	Passed     bool              `gorm:"default:false" json:"passed"`
	Answers    map[string]string `gorm:"serializer:json" json:"answers"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
