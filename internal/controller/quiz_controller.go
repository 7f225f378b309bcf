package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{
		QuizService: quizService,
	}
}

// GetQuiz godoc
// @Summary 获取测验题目
// @Description 返回的题目不含正确答案标记，评分只在服务端进行
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=catalog.QuizView}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	view, err := c.QuizService.GetQuiz(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// SubmitQuiz godoc
// @Summary 提交答卷
// @Description 服务端评分并存档，未作答题目计0分
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.QuizSubmission true "答卷，题目ID到选项ID的映射"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()

	util.Success(ctx, result)
}

// GetResult godoc
// @Summary 查询最近一次测验成绩
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 404 {object} util.Response "测验不存在或尚未作答"
// @Router /api/quizzes/{id}/result [get]
func (c *QuizController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.LatestResult(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if result == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, result)
}
