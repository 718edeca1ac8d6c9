package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 应用层负责用例编排，不包含业务规则（业务规则在domain层）
// 2. 公开注册接口创建的永远是regular角色，
//    管理员账号只能由CLI工具或已有管理员创建
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 角色写死为regular,请求里带的role字段一律忽略
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password, req.FullName, user.RoleRegular)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}, nil
}

// CreateAdminUseCase 管理员创建用户用例
// 与公开注册的区别：可以指定角色（admin接口专用）
type CreateAdminUseCase struct {
	userService user.Service
}

// NewCreateAdminUseCase 创建管理员建号用例
func NewCreateAdminUseCase(userService user.Service) *CreateAdminUseCase {
	return &CreateAdminUseCase{userService: userService}
}

// Execute 执行创建（role由调用方指定）
func (uc *CreateAdminUseCase) Execute(ctx context.Context, req RegisterRequest, role user.Role) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password, req.FullName, role)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}, nil
}
