package app

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"
	"learnhub_backend/pkg/watcher"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Catalog *catalog.Store
}

type repositories struct {
	user        *repository.UserRepository
	progress    *repository.ProgressRepository
	quizResult  *repository.QuizResultRepository
	certificate *repository.CertificateRepository
	discussion  *repository.DiscussionRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	progress    *service.ProgressService
	quiz        *service.QuizService
	certificate *service.CertificateService
	discussion  *service.DiscussionService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	quiz        *controller.QuizController
	certificate *controller.CertificateController
	discussion  *controller.DiscussionController
	dashboard   *controller.DashboardController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		progress:    repository.NewProgressRepository(db),
		quizResult:  repository.NewQuizResultRepository(db),
		certificate: repository.NewCertificateRepository(db),
		discussion:  repository.NewDiscussionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, cat catalog.Repository) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.progress = service.NewProgressService(repos.progress, cat)
	s.quiz = service.NewQuizService(repos.quizResult, cat)
	s.certificate = service.NewCertificateService(repos.certificate, repos.quizResult, repos.user, cat)
	s.discussion = service.NewDiscussionService(repos.discussion, rdb)
	s.dashboard = service.NewDashboardService(repos.progress, repos.certificate, cat, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client, cat catalog.Repository) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		course:      controller.NewCourseController(cat, s.progress),
		quiz:        controller.NewQuizController(s.quiz),
		certificate: controller.NewCertificateController(s.certificate),
		discussion:  controller.NewDiscussionController(s.discussion, s.auth),
		dashboard:   controller.NewDashboardController(s.dashboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	// 课程目录启动时加载一次，请求期间只读
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Log.Fatal("Failed to load course catalog", zap.Error(err))
	}
	logger.Log.Info("Course catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("courses", len(store.Courses())))

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Catalog: store,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb, store)
	controllers := app.initControllers(services, db, rdb, store)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 目录热更新：监听课程目录，文件变更后防抖重载
	if cfg.Catalog.Watch {
		go func() {
			if err := watcher.WatchDir(cfg.Catalog.Path, store.Reload); err != nil {
				logger.Log.Error("Catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
