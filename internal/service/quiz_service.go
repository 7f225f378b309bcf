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

// QuizService 测验评分：正确答案只存在于服务端目录，客户端拿不到
type QuizService struct {
	QuizResultRepo *repository.QuizResultRepository
	Catalog        catalog.Repository
}

func NewQuizService(quizResultRepo *repository.QuizResultRepository, cat catalog.Repository) *QuizService {
	return &QuizService{
		QuizResultRepo: quizResultRepo,
		Catalog:        cat,
	}
}

// GetQuiz 获取测验题目（已剥离 correct 标记）
func (s *QuizService) GetQuiz(quizID string) (*catalog.QuizView, error) {
	quiz, ok := s.Catalog.Quiz(quizID)
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz.Sanitized(), nil
}

// QuizSubmission 提交的答卷，键为题目ID，值为所选选项ID
type QuizSubmission struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// Submit 服务端评分并持久化结果。
// 未作答或选项ID无效的题目得0分，percentage = round(100*earned/total)。
func (s *QuizService) Submit(userID uint, quizID string, answers map[string]string) (*model.QuizResult, error) {
	quiz, ok := s.Catalog.Quiz(quizID)
	if !ok {
		return nil, util.ErrQuizNotFound
	}

	courseID := ""
	if course, ok := s.Catalog.QuizCourse(quizID); ok {
		courseID = course.ID
	}

	earned := 0
	total := quiz.TotalPoints()
	for _, question := range quiz.Questions {
		selected, answered := answers[question.ID]
		if !answered {
			continue
		}
		for _, opt := range question.Options {
			if opt.ID == selected && opt.Correct {
				earned += questionWeight(question)
				break
			}
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(earned) / float64(total)))
	}

	result := &model.QuizResult{
		UserID:     userID,
		QuizID:     quizID,
		CourseID:   courseID,
		Earned:     earned,
		Total:      total,
		Percentage: percentage,
		Passed:     percentage >= quiz.PassingScore,
		Answers:    answers,
	}

	if err := s.QuizResultRepo.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

// LatestResult 查询用户在某测验上的最近一次成绩
func (s *QuizService) LatestResult(userID uint, quizID string) (*model.QuizResult, error) {
	if _, ok := s.Catalog.Quiz(quizID); !ok {
		return nil, util.ErrQuizNotFound
	}

	result, err := s.QuizResultRepo.Latest(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func questionWeight(q catalog.Question) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}
