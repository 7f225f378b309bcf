package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "a.json", `{"courses":[
		{"id":"2","title":"B","lessons":[{"id":"21","title":"x"}]},
		{"id":"1","title":"A","lessons":[{"id":"11","title":"y"},{"id":"12","title":"z"}],
		 "quiz":{"id":"q1","title":"Q","passingScore":50,"questions":[
			{"id":"1","options":[{"id":"a","correct":true}]}]}}
	]}`)

	store, err := Load(dir)
	require.NoError(t, err)

	courses := store.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "1", courses[0].ID, "课程按ID排序")

	course, ok := store.Course("1")
	require.True(t, ok)
	assert.Equal(t, "A", course.Title)

	lesson, ok := store.Lesson("1", "12")
	require.True(t, ok)
	assert.Equal(t, "z", lesson.Title)

	_, ok = store.Lesson("1", "404")
	assert.False(t, ok)

	quiz, ok := store.Quiz("q1")
	require.True(t, ok)
	assert.Equal(t, 50, quiz.PassingScore)

	owner, ok := store.QuizCourse("q1")
	require.True(t, ok)
	assert.Equal(t, "1", owner.ID)

	assert.Equal(t, 2, store.LessonCount("1"))
	assert.Equal(t, 0, store.LessonCount("missing"))
}

func TestLoadRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "dup.json", `{"courses":[
		{"id":"1","title":"A","lessons":[]},
		{"id":"1","title":"B","lessons":[]}
	]}`)

	_, err := Load(dir)
	assert.ErrorContains(t, err, "duplicate course id")
}

func TestLoadRejectsBadPassingScore(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "bad.json", `{"courses":[
		{"id":"1","title":"A","lessons":[],
		 "quiz":{"id":"q1","passingScore":120,"questions":[]}}
	]}`)

	_, err := Load(dir)
	assert.ErrorContains(t, err, "out of range")
}

func TestReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "c.json", `{"courses":[{"id":"1","title":"old","lessons":[]}]}`)

	store, err := Load(dir)
	require.NoError(t, err)

	writeCatalog(t, dir, "c.json", `{"courses":[{"id":"1","title":"new","lessons":[]},{"id":"2","title":"extra","lessons":[]}]}`)
	require.NoError(t, store.Reload())

	course, ok := store.Course("1")
	require.True(t, ok)
	assert.Equal(t, "new", course.Title)
	assert.Len(t, store.Courses(), 2)
}

// 下发视图不携带 correct 标记
func TestSanitizedStripsCorrectFlags(t *testing.T) {
	quiz := &Quiz{
		ID:           "q",
		PassingScore: 60,
		Questions: []Question{
			{ID: "1", Options: []Option{{ID: "a", Correct: true}, {ID: "b"}}},
			{ID: "2", Points: 3, Options: []Option{{ID: "a"}, {ID: "b", Correct: true}}},
		},
	}

	view := quiz.Sanitized()
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct")

	// 未标注分值按1分计
	assert.Equal(t, 1, view.Questions[0].Points)
	assert.Equal(t, 3, view.Questions[1].Points)
	assert.Equal(t, 4, quiz.TotalPoints())
}
