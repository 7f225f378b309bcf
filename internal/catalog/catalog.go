package catalog

// 静态课程目录：课程/课时/测验定义，启动时加载一次，请求期间只读。

type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Points  int      `json:"points"`
	Options []Option `json:"options"`
}

type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	PassingScore int        `json:"passingScore"`
	TimeLimit    int        `json:"timeLimit"` // 秒，仅供前端倒计时，服务端不校验
	Questions    []Question `json:"questions"`
}

type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Duration int    `json:"duration"`
}

type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Lessons     []Lesson `json:"lessons"`
	Quiz        *Quiz    `json:"quiz,omitempty"`
}

// Repository 目录只读访问接口，便于在测试中替换
type Repository interface {
	Courses() []Course
	Course(id string) (*Course, bool)
	Lesson(courseID, lessonID string) (*Lesson, bool)
	Quiz(id string) (*Quiz, bool)
	QuizCourse(quizID string) (*Course, bool)
	LessonCount(courseID string) int
}

// TotalPoints 测验总分，未标注分值的题目按1分计
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += questionPoints(question)
	}
	return total
}

func questionPoints(q Question) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// 下发给客户端的测验视图，剥离 correct 标记，评分只在服务端进行

type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Points  int          `json:"points"`
	Options []OptionView `json:"options"`
}

type QuizView struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	PassingScore int            `json:"passingScore"`
	TimeLimit    int            `json:"timeLimit"`
	Questions    []QuestionView `json:"questions"`
}

func (q *Quiz) Sanitized() *QuizView {
	view := &QuizView{
		ID:           q.ID,
		Title:        q.Title,
		PassingScore: q.PassingScore,
		TimeLimit:    q.TimeLimit,
		Questions:    make([]QuestionView, len(q.Questions)),
	}
	for i, question := range q.Questions {
		qv := QuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Points:  questionPoints(question),
			Options: make([]OptionView, len(question.Options)),
		}
		for j, opt := range question.Options {
			qv.Options[j] = OptionView{ID: opt.ID, Text: opt.Text}
		}
		view.Questions[i] = qv
	}
	return view
}

// CourseSummary 课程列表项，不含课时正文与测验
type CourseSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	LessonCount int    `json:"lessonCount"`
	HasQuiz     bool   `json:"hasQuiz"`
}

func (c *Course) Summary() CourseSummary {
	return CourseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		LessonCount: len(c.Lessons),
		HasQuiz:     c.Quiz != nil,
	}
}
