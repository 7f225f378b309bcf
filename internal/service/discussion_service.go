package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// DiscussionService 讨论区：提问、回帖，删除仅限作者本人或管理员
type DiscussionService struct {
	DiscussionRepo *repository.DiscussionRepository
	Redis          *redis.Client
}

func NewDiscussionService(discussionRepo *repository.DiscussionRepository, redisClient *redis.Client) *DiscussionService {
	return &DiscussionService{
		DiscussionRepo: discussionRepo,
		Redis:          redisClient,
	}
}

func (s *DiscussionService) List(page, pageSize int) ([]model.Discussion, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.DiscussionRepo.FindWithPagination(offset, pageSize)
}

// Get 获取帖子详情。同一用户10分钟内重复浏览不重复计数。
func (s *DiscussionService) Get(id string, viewerID uint) (*model.Discussion, error) {
	thread, err := s.DiscussionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrThreadNotFound
		}
		return nil, err
	}

	if viewerID > 0 && s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		key := fmt.Sprintf("discussion_view:%d:%s", viewerID, id)
		set, err := s.Redis.SetNX(ctx, key, 1, 10*time.Minute).Result()
		if err == nil && set {
			if err := s.DiscussionRepo.IncrementViews(id); err == nil {
				thread.Views++
			}
		}
	}

	return thread, nil
}

func (s *DiscussionService) Create(author *model.User, question string) (*model.Discussion, error) {
	thread := &model.Discussion{
		AuthorID: author.ID,
		Question: question,
	}
	if err := s.DiscussionRepo.Create(thread); err != nil {
		return nil, err
	}
	thread.Author = *author
	return thread, nil
}

// AddReply 回帖。回帖人角色快照自令牌声明，便于前端标记"教师回答"。
func (s *DiscussionService) AddReply(threadID string, responder *util.Claims, text string) (*model.Reply, error) {
	if _, err := s.DiscussionRepo.FindByID(threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrThreadNotFound
		}
		return nil, err
	}

	reply := &model.Reply{
		DiscussionID: threadID,
		ResponderID:  responder.UserID,
		Role:         responder.Role,
		Text:         text,
	}
	if err := s.DiscussionRepo.CreateReply(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// DeleteThread 删帖：只有帖子作者或管理员可删，连带删除全部回帖
func (s *DiscussionService) DeleteThread(threadID string, actor *util.Claims) error {
	thread, err := s.DiscussionRepo.FindByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrThreadNotFound
		}
		return err
	}

	if thread.AuthorID != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}

	return s.DiscussionRepo.Delete(threadID)
}

// DeleteReply 删回帖：只有回帖人本人或管理员可删
func (s *DiscussionService) DeleteReply(threadID, replyID string, actor *util.Claims) error {
	reply, err := s.DiscussionRepo.FindReply(threadID, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrReplyNotFound
		}
		return err
	}

	if reply.ResponderID != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}

	return s.DiscussionRepo.DeleteReply(replyID)
}
