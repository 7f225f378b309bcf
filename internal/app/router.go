package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"

	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录公开可浏览
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/courses/:id/lessons", c.course.ListLessons)
		public.GET("/courses/:id/lessons/:lessonId", c.course.GetLesson)

		// 讨论区列表/详情：可选认证，登录用户浏览计入浏览量
		public.GET("/discussions", middleware.TryAuthMiddleware(a.Config), c.discussion.List)
		public.GET("/discussions/:id", middleware.TryAuthMiddleware(a.Config), c.discussion.Get)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	// 个人资料
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.auth.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 学习进度
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/:id/progress", c.course.GetProgress)
	rg.PUT("/courses/:id/progress", c.course.SetProgress)
	rg.PUT("/courses/:id/complete-lesson", c.course.CompleteLesson)
	rg.GET("/progress", c.course.GetMyProgress)

	// 测验
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
	rg.GET("/quizzes/:id/result", c.quiz.GetResult)

	// 证书
	rg.POST("/certificates", c.certificate.Issue)
	rg.GET("/certificates", c.certificate.ListMine)
	rg.GET("/certificates/:studentId", c.certificate.ListForStudent)

	// 讨论区交互
	rg.POST("/discussions", c.discussion.Create)
	rg.POST("/discussions/:id/reply", c.discussion.Reply)
	rg.DELETE("/discussions/:id", c.discussion.DeleteThread)
	rg.DELETE("/discussions/:id/replies/:replyId", c.discussion.DeleteReply)

	// 概览
	rg.GET("/dashboard", c.dashboard.GetDashboard)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/overview", c.dashboard.GetTeacherOverview)
		teacher.GET("/students/progress", c.course.GetStudentsProgress)
		teacher.GET("/students/:id/progress", c.course.GetStudentProgress)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.GetUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)
		admin.POST("/users/:id/approve", c.user.ApproveTeacher)
		admin.POST("/users/:id/reset-password", c.user.ResetPassword)

		// 管理端聚合视图与内容治理
		admin.GET("/students/progress", c.course.GetStudentsProgress)
		admin.DELETE("/discussions/:id", c.discussion.DeleteThread)
		admin.DELETE("/discussions/:id/replies/:replyId", c.discussion.DeleteReply)
	}
}
