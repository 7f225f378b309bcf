package service

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-unit-tests-only-0123"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLoginStudent(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "password123",
		Role:     model.Student,
	}
	require.NoError(t, svc.Register(user))
	assert.True(t, user.IsApproved, "学生注册后无需审核")
	assert.NotEqual(t, "password123", user.Password, "密码必须哈希存储")

	token, logged, err := svc.Login("zhangsan@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Name: "A", Email: "dup@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "B", Email: "dup@example.com", Password: "password456", Role: model.Student}
	err := svc.Register(second)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "C", Email: "c@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(user))

	_, _, err := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, _, err = svc.Login("c@example.com", "wrongpassword")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

// 教师注册后待审核，审核通过前不能登录，通过后可登录且审核只能翻转一次
func TestTeacherApprovalFlow(t *testing.T) {
	svc := newAuthService(t)
	userSvc := NewUserService(svc.UserRepo)

	teacher := &model.User{Name: "李老师", Email: "teacher@example.com", Password: "password123", Role: model.Teacher}
	require.NoError(t, svc.Register(teacher))
	assert.False(t, teacher.IsApproved)

	_, _, err := svc.Login("teacher@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrPendingApproval)

	approved, err := userSvc.ApproveTeacher(teacher.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = userSvc.ApproveTeacher(teacher.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyApproved)

	token, _, err := svc.Login("teacher@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestUpdateProfileRequiresCurrentPassword(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "D", Email: "d@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(user))

	_, err := svc.UpdateProfile(user.ID, "新名字", "", "wrongpassword", "")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	updated, err := svc.UpdateProfile(user.ID, "新名字", "", "password123", "newpassword1")
	require.NoError(t, err)
	assert.Equal(t, "新名字", updated.Name)

	_, _, err = svc.Login("d@example.com", "newpassword1")
	assert.NoError(t, err)
}
