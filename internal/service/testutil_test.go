package service

import (
	"learnhub_backend/internal/catalog"
	"learnhub_backend/pkg/database"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接保证内存库在测试期间不被回收
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

const testCatalogJSON = `{
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
        "timeLimit": 600,
        "questions": [
          {"id": "q1-1", "text": "入口函数", "points": 1, "options": [
            {"id": "a", "text": "main", "correct": true},
            {"id": "b", "text": "init", "correct": false}
          ]},
          {"id": "q1-2", "text": "短变量声明", "points": 1, "options": [
            {"id": "a", "text": "x := 1", "correct": true},
            {"id": "b", "text": "let x = 1", "correct": false}
          ]},
          {"id": "q1-3", "text": "int 零值", "points": 1, "options": [
            {"id": "a", "text": "nil", "correct": false},
            {"id": "b", "text": "0", "correct": true}
          ]}
        ]
      }
    },
    {
      "id": "2",
      "title": "Web 开发基础",
      "category": "web",
      "lessons": [
        {"id": "201", "title": "HTTP", "content": "...", "duration": 30},
        {"id": "202", "title": "REST", "content": "...", "duration": 40},
        {"id": "203", "title": "认证", "content": "...", "duration": 45},
        {"id": "204", "title": "调试", "content": "...", "duration": 25}
      ]
    }
  ]
}`

func newTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.json"), []byte(testCatalogJSON), 0644))

	store, err := catalog.Load(dir)
	require.NoError(t, err)
	return store
}
