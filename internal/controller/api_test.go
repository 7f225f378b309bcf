package controller

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const apiTestCatalog = `{
  "courses": [
    {
      "id": "1",
      "title": "Go 语言入门",
      "category": "programming",
      "lessons": [
        {"id": "101", "title": "环境搭建", "content": "...", "duration": 20},
        {"id": "102", "title": "基础语法", "content": "...", "duration": 35}
      ],
      "quiz": {
        "id": "q1",
        "title": "入门测验",
        "passingScore": 60,
        "questions": [
          {"id": "q1-1", "text": "入口函数", "points": 1, "options": [
            {"id": "a", "text": "main", "correct": true},
            {"id": "b", "text": "init", "correct": false}
          ]},
          {"id": "q1-2", "text": "零值", "points": 1, "options": [
            {"id": "a", "text": "0", "correct": true},
            {"id": "b", "text": "nil", "correct": false}
          ]}
        ]
      }
    }
  ]
}`

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.json"), []byte(apiTestCatalog), 0644))
	store, err := catalog.Load(dir)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "api-test-secret-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizResultRepository(db)
	certRepo := repository.NewCertificateRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg)
	progressSvc := service.NewProgressService(progressRepo, store)
	quizSvc := service.NewQuizService(quizRepo, store)
	certSvc := service.NewCertificateService(certRepo, quizRepo, userRepo, store)

	authCtrl := NewAuthController(authSvc)
	courseCtrl := NewCourseController(store, progressSvc)
	quizCtrl := NewQuizController(quizSvc)
	certCtrl := NewCertificateController(certSvc)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/login", authCtrl.Login)
		api.GET("/courses", courseCtrl.ListCourses)
	}

	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", authCtrl.GetProfile)
		auth.POST("/courses/:id/enroll", courseCtrl.Enroll)
		auth.GET("/courses/:id/progress", courseCtrl.GetProgress)
		auth.PUT("/courses/:id/complete-lesson", courseCtrl.CompleteLesson)
		auth.GET("/quizzes/:id", quizCtrl.GetQuiz)
		auth.POST("/quizzes/:id/submit", quizCtrl.SubmitQuiz)
		auth.POST("/certificates", certCtrl.Issue)
	}

	return router
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// 注册→登录→报名→完成课时→查询进度 的完整链路
func TestStudentLearningFlow(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/register", "", gin.H{
		"name": "王小明", "email": "xm@example.com", "password": "password123", "role": "student",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/login", "", gin.H{
		"email": "xm@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := dataField(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(router, http.MethodPost, "/api/courses/1/enroll", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPut, "/api/courses/1/complete-lesson", token, gin.H{"lessonId": "101"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/courses/1/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(50), data["percentage"])
	assert.Equal(t, []interface{}{"101"}, data["completedLessons"])
}

func TestAuthRequired(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/courses/1/enroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/courses/1/enroll", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// 测验接口不泄漏答案标记，评分只在服务端
func TestQuizPayloadHasNoAnswerFlags(t *testing.T) {
	router := setupRouter(t)

	token := registerAndLogin(t, router, "quiz@example.com")

	w := doJSON(router, http.MethodGet, "/api/quizzes/q1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct")

	w = doJSON(router, http.MethodPost, "/api/quizzes/q1/submit", token, gin.H{
		"answers": gin.H{"q1-1": "a", "q1-2": "b"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(50), data["percentage"])
	assert.Equal(t, false, data["passed"])
}

// 证书流：未通过测验 400，通过后签发，重复签发 409
func TestCertificateFlow(t *testing.T) {
	router := setupRouter(t)

	token := registerAndLogin(t, router, "cert@example.com")

	w := doJSON(router, http.MethodPost, "/api/certificates", token, gin.H{"courseId": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/quizzes/q1/submit", token, gin.H{
		"answers": gin.H{"q1-1": "a", "q1-2": "a"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/certificates", token, gin.H{"courseId": "1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/certificates", token, gin.H{"courseId": "1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/register", "", gin.H{
		"name": "测试用户", "email": email, "password": "password123", "role": "student",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := dataField(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
