package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
	// 教师账号注册后默认未审核，需管理员批准后方可登录；注册时显式赋值
	IsApproved bool      `json:"isApproved"`
	Avatar     string    `gorm:"size:255" json:"avatar"`
	LastLogin  time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
