package database

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAdmin(db)

	return db, nil
}

// Migrate 建表，测试里用 sqlite 时也走这一份
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Progress{},
		&model.LessonEvent{},
		&model.QuizResult{},
		&model.Certificate{},
		&model.Discussion{},
		&model.Reply{},
	)
}

// 默认管理员账号，首次启动时创建，密码通过环境变量覆盖
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("LEARNHUB_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	admin := &model.User{
		Name:       "Administrator",
		Email:      "admin@learnhub.local",
		Password:   string(hashed),
		Role:       model.Admin,
		IsApproved: true,
	}
	db.Create(admin)
}
