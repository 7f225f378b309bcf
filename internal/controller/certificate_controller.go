package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{
		CertificateService: certificateService,
	}
}

// swagger:model IssueCertificateRequest
type IssueCertificateRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// Issue godoc
// @Summary 签发结业证书
// @Description 学生身份取自令牌，需已通过课程测验，同一课程只发一张
// @Tags 证书
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body IssueCertificateRequest true "课程ID"
// @Success 201 {object} util.Response{data=model.Certificate}
// @Failure 400 {object} util.Response "测验未通过"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "证书已签发"
// @Router /api/certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert, err := c.CertificateService.Issue(claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizNotPassed):
			util.BadRequest(ctx, "测验未通过，无法签发证书")
		case errors.Is(err, util.ErrCertificateExists):
			util.Conflict(ctx, "该课程证书已签发")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, cert)
}

// ListForStudent godoc
// @Summary 查询学生证书
// @Description 学生只能查自己的证书，管理员可查任意学生
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Failure 403 {object} util.Response "无权查看他人证书"
// @Router /api/certificates/{studentId} [get]
func (c *CertificateController) ListForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	// 只有本人或管理员可查
	if claims.UserID != uint(studentID) && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}

	certs, err := c.CertificateService.ListForStudent(uint(studentID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// ListMine godoc
// @Summary 我的证书
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertificateService.ListForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}
