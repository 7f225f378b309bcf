package controller

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Catalog         catalog.Repository
	ProgressService *service.ProgressService
}

func NewCourseController(cat catalog.Repository, progressService *service.ProgressService) *CourseController {
	return &CourseController{
		Catalog:         cat,
		ProgressService: progressService,
	}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 获取全部课程的概要信息
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]catalog.CourseSummary}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses := c.Catalog.Courses()
	summaries := make([]catalog.CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, courses[i].Summary())
	}
	util.Success(ctx, summaries)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 获取课程及其课时列表，测验只返回概要
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, ok := c.Catalog.Course(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	resp := gin.H{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"category":    course.Category,
		"lessons":     course.Lessons,
	}
	if course.Quiz != nil {
		resp["quiz"] = gin.H{
			"id":           course.Quiz.ID,
			"title":        course.Quiz.Title,
			"passingScore": course.Quiz.PassingScore,
			"questions":    len(course.Quiz.Questions),
		}
	}

	util.Success(ctx, resp)
}

// ListLessons godoc
// @Summary 课时列表
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]catalog.Lesson}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/lessons [get]
func (c *CourseController) ListLessons(ctx *gin.Context) {
	course, ok := c.Catalog.Course(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course.Lessons)
}

// GetLesson godoc
// @Summary 课时详情
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Success 200 {object} util.Response{data=catalog.Lesson}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/courses/{id}/lessons/{lessonId} [get]
func (c *CourseController) GetLesson(ctx *gin.Context) {
	lesson, ok := c.Catalog.Lesson(ctx.Param("id"), ctx.Param("lessonId"))
	if !ok {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// Enroll godoc
// @Summary 报名课程
// @Description 为当前用户创建进度记录，重复报名返回现有记录
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.Enroll(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// GetProgress godoc
// @Summary 查询课程进度
// @Description 当前用户在某课程的进度，未报名时返回零值进度
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// swagger:model SetProgressRequest
type SetProgressRequest struct {
	Percentage int `json:"percentage" binding:"min=0,max=100"`
}

// SetProgress godoc
// @Summary 直报课程进度
// @Description 客户端上报百分比（视频播放等场景），只允许推进
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body SetProgressRequest true "进度"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/progress [put]
func (c *CourseController) SetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SetProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetProgress(claims.UserID, ctx.Param("id"), req.Percentage)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Description 幂等操作，重复提交同一课时不改变进度
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body CompleteLessonRequest true "课时ID"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response "课程或课时不存在"
// @Router /api/courses/{id}/complete-lesson [put]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.CompleteLesson(claims.UserID, ctx.Param("id"), req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.LessonCompletions.Inc()

	util.Success(ctx, progress)
}

// GetMyProgress godoc
// @Summary 我的全部课程进度
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseProgressItem}
// @Router /api/progress [get]
func (c *CourseController) GetMyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.ProgressService.AggregateForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// GetStudentsProgress godoc
// @Summary 全体学生平均进度
// @Description 教师/管理员查看每个学生的课程数和平均完成度
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.StudentAverage}
// @Router /api/teacher/students/progress [get]
func (c *CourseController) GetStudentsProgress(ctx *gin.Context) {
	rows, err := c.ProgressService.AggregateAcrossStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetStudentProgress godoc
// @Summary 单个学生的课程进度
// @Description 教师/管理员查看某学生每门课程的完成情况
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Success 200 {object} util.Response{data=[]service.CourseProgressItem}
// @Router /api/teacher/students/{id}/progress [get]
func (c *CourseController) GetStudentProgress(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	items, err := c.ProgressService.AggregateForUser(uint(studentID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
