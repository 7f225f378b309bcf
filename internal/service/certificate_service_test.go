package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertificateFixture(t *testing.T) (*CertificateService, *QuizService, *model.User) {
	t.Helper()
	db := newTestDB(t)
	cat := newTestCatalog(t)

	userRepo := repository.NewUserRepository(db)
	quizRepo := repository.NewQuizResultRepository(db)

	student := &model.User{Name: "王小明", Email: "student@example.com", Password: "hash", Role: model.Student}
	require.NoError(t, userRepo.Create(student))

	certSvc := NewCertificateService(repository.NewCertificateRepository(db), quizRepo, userRepo, cat)
	quizSvc := NewQuizService(quizRepo, cat)
	return certSvc, quizSvc, student
}

func TestIssueRequiresPassedQuiz(t *testing.T) {
	certSvc, quizSvc, student := newCertificateFixture(t)

	_, err := certSvc.Issue(student.ID, "1")
	assert.ErrorIs(t, err, util.ErrQuizNotPassed)

	// 不及格的成绩不算
	_, err = quizSvc.Submit(student.ID, "q1", map[string]string{"q1-1": "a"})
	require.NoError(t, err)
	_, err = certSvc.Issue(student.ID, "1")
	assert.ErrorIs(t, err, util.ErrQuizNotPassed)
}

// 同一学生同一课程的证书只签发一次
func TestIssueExactlyOnce(t *testing.T) {
	certSvc, quizSvc, student := newCertificateFixture(t)

	result, err := quizSvc.Submit(student.ID, "q1", map[string]string{"q1-1": "a", "q1-2": "a", "q1-3": "b"})
	require.NoError(t, err)
	require.True(t, result.Passed)

	cert, err := certSvc.Issue(student.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, "王小明", cert.StudentName)
	assert.Equal(t, "Go 语言入门", cert.CourseName)
	assert.Equal(t, 100, cert.Percentage)
	assert.False(t, cert.IssuedAt.IsZero())

	_, err = certSvc.Issue(student.ID, "1")
	assert.ErrorIs(t, err, util.ErrCertificateExists)

	certs, err := certSvc.ListForStudent(student.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestIssueUnknownCourse(t *testing.T) {
	certSvc, _, student := newCertificateFixture(t)

	_, err := certSvc.Issue(student.ID, "no-such-course")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
