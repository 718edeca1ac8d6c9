package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 用户领域服务接口
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 注册用户
	// 业务规则：注册接口创建的用户角色固定为regular，
	// 管理员只能由CLI或已有管理员创建
	Register(ctx context.Context, username, email, password, fullName string, role Role) (*User, error)

	// Login 用户登录（用户名+密码）
	Login(ctx context.Context, username, password string) (*User, error)

	// ChangePassword 修改密码（重新bcrypt加密）
	ChangePassword(ctx context.Context, u *User, newPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 注册用户
// 业务规则：
// 1. 用户名3-50个字符
// 2. 邮箱格式校验
// 3. 密码强度校验（8-20位，包含字母和数字）
// 4. 用户名/邮箱唯一性由数据库UNIQUE索引保证（Repository转换重复错误）
func (s *service) Register(ctx context.Context, username, email, password, fullName string, role Role) (*User, error) {
	// 1. 用户名校验
	if len(username) < 3 || len(username) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名长度应为3-50个字符")
	}

	// 2. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 3. 密码强度校验
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 4. 角色校验
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	// 5. 密码加密
	// bcrypt自动加盐，cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 6. 创建用户实体并持久化
	u := NewUser(username, email, fullName, string(hashedPassword), role)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 业务规则：
// 1. 用户名必须存在，密码必须正确
// 2. 停用的账号不能登录
// 注意：用户不存在与密码错误返回同一个错误，防止用户名枚举
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return u, nil
}

// ChangePassword 修改密码
func (s *service) ChangePassword(ctx context.Context, u *User, newPassword string) error {
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}

	u.HashedPassword = string(hashedPassword)
	return s.repo.Update(ctx, u)
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
