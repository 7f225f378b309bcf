package service

import (
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T) *ProgressService {
	t.Helper()
	db := newTestDB(t)
	return NewProgressService(repository.NewProgressRepository(db), newTestCatalog(t))
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc := newProgressService(t)

	first, err := svc.Enroll(1, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Percentage)

	second, err := svc.Enroll(1, "1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "重复报名返回同一条进度记录")

	_, err = svc.Enroll(1, "no-such-course")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetProgressZeroState(t *testing.T) {
	svc := newProgressService(t)

	// 未报名也能查询，返回零值进度
	p, err := svc.GetProgress(7, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Percentage)
	assert.Empty(t, p.CompletedLessons)

	_, err = svc.GetProgress(7, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

// 完成课时幂等：同一课时重复提交不改变百分比和清单
func TestCompleteLessonIdempotent(t *testing.T) {
	svc := newProgressService(t)

	p, err := svc.CompleteLesson(1, "1", "101")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Percentage)
	assert.Equal(t, []string{"101"}, p.CompletedLessons)

	again, err := svc.CompleteLesson(1, "1", "101")
	require.NoError(t, err)
	assert.Equal(t, 50, again.Percentage)
	assert.Equal(t, []string{"101"}, again.CompletedLessons)

	p, err = svc.CompleteLesson(1, "1", "102")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Percentage)
}

// 4课时完成3个 → round(75) = 75
func TestCompletionPercentageRounding(t *testing.T) {
	svc := newProgressService(t)

	for _, lessonID := range []string{"201", "202", "203"} {
		_, err := svc.CompleteLesson(2, "2", lessonID)
		require.NoError(t, err)
	}

	p, err := svc.GetProgress(2, "2")
	require.NoError(t, err)
	assert.Equal(t, 75, p.Percentage)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	svc := newProgressService(t)

	_, err := svc.CompleteLesson(1, "1", "999")
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	_, err = svc.CompleteLesson(1, "missing", "101")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestSetProgressClampsAndNeverRegresses(t *testing.T) {
	svc := newProgressService(t)

	p, err := svc.SetProgress(3, "1", 130)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Percentage)

	p, err = svc.SetProgress(3, "1", 40)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Percentage, "直报进度不允许回退")
}

func TestAggregateForUser(t *testing.T) {
	svc := newProgressService(t)

	_, err := svc.CompleteLesson(5, "1", "101")
	require.NoError(t, err)
	_, err = svc.Enroll(5, "2")
	require.NoError(t, err)

	items, err := svc.AggregateForUser(5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "1", items[0].CourseID)
	assert.Equal(t, "Go 语言入门", items[0].CourseTitle)
	assert.Equal(t, 2, items[0].TotalLessons)
	assert.Equal(t, 50, items[0].Percentage)
	assert.Equal(t, 4, items[1].TotalLessons)
}
