package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store 内存中的目录快照，Reload 时整体替换
type Store struct {
	mu      sync.RWMutex
	path    string
	courses []Course
	byID    map[string]*Course
	quizzes map[string]*Quiz  // quizID -> quiz
	quizOf  map[string]string // quizID -> courseID
}

type catalogFile struct {
	Courses []Course `json:"courses"`
}

// Load 读取目录下所有 *.json 文件并构建快照
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return fmt.Errorf("read catalog dir %s: %w", s.path, err)
	}

	var courses []Course
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.path, entry.Name()))
		if err != nil {
			return err
		}
		var file catalogFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse catalog file %s: %w", entry.Name(), err)
		}
		courses = append(courses, file.Courses...)
	}

	byID := make(map[string]*Course, len(courses))
	quizzes := make(map[string]*Quiz)
	quizOf := make(map[string]string)

	for i := range courses {
		c := &courses[i]
		if c.ID == "" {
			return fmt.Errorf("course %q has empty id", c.Title)
		}
		if _, dup := byID[c.ID]; dup {
			return fmt.Errorf("duplicate course id %q", c.ID)
		}
		byID[c.ID] = c

		seen := make(map[string]bool, len(c.Lessons))
		for _, l := range c.Lessons {
			if seen[l.ID] {
				return fmt.Errorf("duplicate lesson id %q in course %q", l.ID, c.ID)
			}
			seen[l.ID] = true
		}

		if c.Quiz != nil {
			q := c.Quiz
			if q.PassingScore < 0 || q.PassingScore > 100 {
				return fmt.Errorf("quiz %q passingScore %d out of range", q.ID, q.PassingScore)
			}
			if _, dup := quizzes[q.ID]; dup {
				return fmt.Errorf("duplicate quiz id %q", q.ID)
			}
			quizzes[q.ID] = q
			quizOf[q.ID] = c.ID
		}
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	s.mu.Lock()
	s.courses = courses
	s.byID = byID
	s.quizzes = quizzes
	s.quizOf = quizOf
	s.mu.Unlock()

	return nil
}

func (s *Store) Courses() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s *Store) Course(id string) (*Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	return c, ok
}

func (s *Store) Lesson(courseID, lessonID string) (*Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[courseID]
	if !ok {
		return nil, false
	}
	for i := range c.Lessons {
		if c.Lessons[i].ID == lessonID {
			return &c.Lessons[i], true
		}
	}
	return nil, false
}

func (s *Store) Quiz(id string) (*Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quizzes[id]
	return q, ok
}

func (s *Store) QuizCourse(quizID string) (*Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	courseID, ok := s.quizOf[quizID]
	if !ok {
		return nil, false
	}
	c, ok := s.byID[courseID]
	return c, ok
}

func (s *Store) LessonCount(courseID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.byID[courseID]; ok {
		return len(c.Lessons)
	}
	return 0
}
