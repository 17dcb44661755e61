package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrNameRequired     = errors.New("respondent name is required")
	ErrQuizInactive     = errors.New("quiz is not active")

	ErrInvalidQuestionType = errors.New("不支持的题型")

	// AI 导入的三类失败，对应前端展示的不同提示
	ErrAIUnreachable = errors.New("cannot reach AI service")
	ErrAIRejected    = errors.New("AI service returned an error")
	ErrAIBadSchema   = errors.New("AI response did not match the expected question schema")
)
