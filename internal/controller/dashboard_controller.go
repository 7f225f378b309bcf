package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary 学习概览
// @Description 当前用户的报名数/完课数/平均进度/证书数/最近课时，缓存60秒
// @Tags 概览
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardData}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.DashboardService.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

// GetTeacherOverview godoc
// @Summary 教学概览
// @Description 教师/管理员查看全体学生的学习情况
// @Tags 概览
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TeacherOverview}
// @Router /api/teacher/overview [get]
func (c *DashboardController) GetTeacherOverview(ctx *gin.Context) {
	overview, err := c.DashboardService.GetTeacherOverview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}
