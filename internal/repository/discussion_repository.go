package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type DiscussionRepository struct {
	DB *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: db}
}

func (r *DiscussionRepository) Create(thread *model.Discussion) error {
	return r.DB.Create(thread).Error
}

func (r *DiscussionRepository) FindByID(id string) (*model.Discussion, error) {
	var thread model.Discussion
	err := r.DB.Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at ASC")
		}).
		Preload("Replies.Responder").
		Where("id = ?", id).
		First(&thread).Error
	return &thread, err
}

func (r *DiscussionRepository) FindWithPagination(offset, limit int) ([]model.Discussion, int64, error) {
	var threads []model.Discussion
	var total int64

	if err := r.DB.Model(&model.Discussion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&threads).Error
	return threads, total, err
}

func (r *DiscussionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discussion_id = ?", id).Delete(&model.Reply{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Discussion{}).Error
	})
}

func (r *DiscussionRepository) CreateReply(reply *model.Reply) error {
	return r.DB.Create(reply).Error
}

func (r *DiscussionRepository) FindReply(threadID, replyID string) (*model.Reply, error) {
	var reply model.Reply
	err := r.DB.Where("id = ? AND discussion_id = ?", replyID, threadID).First(&reply).Error
	return &reply, err
}

func (r *DiscussionRepository) DeleteReply(replyID string) error {
	return r.DB.Where("id = ?", replyID).Delete(&model.Reply{}).Error
}

func (r *DiscussionRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Discussion{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}
