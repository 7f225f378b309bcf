package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("teacher account pending admin approval")
	ErrAlreadyApproved    = errors.New("account already approved")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPassed      = errors.New("quiz not passed")
	ErrCertificateExists  = errors.New("certificate already issued for this course")
	ErrThreadNotFound     = errors.New("discussion thread not found")
	ErrReplyNotFound      = errors.New("reply not found")
)
