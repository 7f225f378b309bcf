package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscussionFixture(t *testing.T) (*DiscussionService, *model.User, *model.User, *model.User) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	author := &model.User{Name: "提问者", Email: "asker@example.com", Password: "hash", Role: model.Student}
	other := &model.User{Name: "路人", Email: "other@example.com", Password: "hash", Role: model.Student}
	admin := &model.User{Name: "管理员", Email: "admin@example.com", Password: "hash", Role: model.Admin}
	for _, u := range []*model.User{author, other, admin} {
		require.NoError(t, userRepo.Create(u))
	}

	// 测试不接 Redis，浏览去重直接跳过
	return NewDiscussionService(repository.NewDiscussionRepository(db), nil), author, other, admin
}

func claimsFor(u *model.User) *util.Claims {
	return &util.Claims{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func TestCreateAndGetThread(t *testing.T) {
	svc, author, other, _ := newDiscussionFixture(t)

	thread, err := svc.Create(author, "defer 的执行顺序是什么？")
	require.NoError(t, err)
	require.NotEmpty(t, thread.ID)

	_, err = svc.AddReply(thread.ID, claimsFor(other), "后进先出。")
	require.NoError(t, err)

	got, err := svc.Get(thread.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.AuthorID)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, model.Student, got.Replies[0].Role)

	_, err = svc.Get("missing-id", 0)
	assert.ErrorIs(t, err, util.ErrThreadNotFound)
}

// 非作者且非管理员不能删帖/删回帖
func TestDeletePermissions(t *testing.T) {
	svc, author, other, admin := newDiscussionFixture(t)

	thread, err := svc.Create(author, "切片扩容策略？")
	require.NoError(t, err)
	reply, err := svc.AddReply(thread.ID, claimsFor(author), "看 runtime/slice.go")
	require.NoError(t, err)

	err = svc.DeleteReply(thread.ID, reply.ID, claimsFor(other))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	err = svc.DeleteThread(thread.ID, claimsFor(other))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 本人可删回帖
	require.NoError(t, svc.DeleteReply(thread.ID, reply.ID, claimsFor(author)))

	// 管理员可删任何帖子
	require.NoError(t, svc.DeleteThread(thread.ID, claimsFor(admin)))

	_, err = svc.Get(thread.ID, 0)
	assert.ErrorIs(t, err, util.ErrThreadNotFound)
}

func TestDeleteThreadCascadesReplies(t *testing.T) {
	svc, author, other, _ := newDiscussionFixture(t)

	thread, err := svc.Create(author, "map 并发安全吗？")
	require.NoError(t, err)
	reply, err := svc.AddReply(thread.ID, claimsFor(other), "不安全，用 sync.Map 或加锁。")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(thread.ID, claimsFor(author)))

	err = svc.DeleteReply(thread.ID, reply.ID, claimsFor(other))
	assert.ErrorIs(t, err, util.ErrReplyNotFound)
}

func TestListPagination(t *testing.T) {
	svc, author, _, _ := newDiscussionFixture(t)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(author, "问题")
		require.NoError(t, err)
	}

	threads, total, err := svc.List(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, threads, 20)

	threads, _, err = svc.List(2, 20)
	require.NoError(t, err)
	assert.Len(t, threads, 5)
}
