package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DiscussionController struct {
	DiscussionService *service.DiscussionService
	AuthService       *service.AuthService
}

func NewDiscussionController(discussionService *service.DiscussionService, authService *service.AuthService) *DiscussionController {
	return &DiscussionController{
		DiscussionService: discussionService,
		AuthService:       authService,
	}
}

// List godoc
// @Summary 讨论列表
// @Tags 讨论区
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/discussions [get]
func (c *DiscussionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	threads, total, err := c.DiscussionService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  threads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 讨论详情
// @Description 含全部回帖，登录用户浏览计入浏览量（10分钟去重）
// @Tags 讨论区
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} util.Response{data=model.Discussion}
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/discussions/{id} [get]
func (c *DiscussionController) Get(ctx *gin.Context) {
	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	thread, err := c.DiscussionService.Get(ctx.Param("id"), viewerID)
	if err != nil {
		if errors.Is(err, util.ErrThreadNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, thread)
}

// swagger:model CreateDiscussionRequest
type CreateDiscussionRequest struct {
	Question string `json:"question" binding:"required"`
}

// Create godoc
// @Summary 发起提问
// @Tags 讨论区
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateDiscussionRequest true "问题内容"
// @Success 201 {object} util.Response{data=model.Discussion}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/discussions [post]
func (c *DiscussionController) Create(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateDiscussionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	thread, err := c.DiscussionService.Create(user, req.Question)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, thread)
}

// swagger:model CreateReplyRequest
type CreateReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

// Reply godoc
// @Summary 回帖
// @Description 回帖人角色从令牌声明快照
// @Tags 讨论区
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "帖子ID"
// @Param body body CreateReplyRequest true "回复内容"
// @Success 201 {object} util.Response{data=model.Reply}
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/discussions/{id}/reply [post]
func (c *DiscussionController) Reply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.DiscussionService.AddReply(ctx.Param("id"), claims, req.Text)
	if err != nil {
		if errors.Is(err, util.ErrThreadNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, reply)
}

// DeleteThread godoc
// @Summary 删除帖子
// @Description 仅帖子作者或管理员可删，回帖一并删除
// @Tags 讨论区
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权删除"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/discussions/{id} [delete]
func (c *DiscussionController) DeleteThread(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.DiscussionService.DeleteThread(ctx.Param("id"), claims); err != nil {
		switch {
		case errors.Is(err, util.ErrThreadNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("id")})
}

// DeleteReply godoc
// @Summary 删除回帖
// @Description 仅回帖人本人或管理员可删
// @Tags 讨论区
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "帖子ID"
// @Param replyId path string true "回帖ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权删除"
// @Failure 404 {object} util.Response "回帖不存在"
// @Router /api/discussions/{id}/replies/{replyId} [delete]
func (c *DiscussionController) DeleteReply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.DiscussionService.DeleteReply(ctx.Param("id"), ctx.Param("replyId"), claims); err != nil {
		switch {
		case errors.Is(err, util.ErrReplyNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("replyId")})
}
