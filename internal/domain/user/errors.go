package user

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.ErrUsernameDuplicate

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.ErrEmailDuplicate

	// ErrInvalidPassword 密码错误
	ErrInvalidPassword = apperrors.ErrInvalidPassword

	// ErrUserInactive 账号已停用
	ErrUserInactive = apperrors.ErrUserInactive

	// ErrInvalidRole 非法的角色值
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的角色值")
)
