package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// UpdateUserUseCase 更新用户用例
// 权限模型（稀疏更新+字段静默丢弃）：
// 1. 普通读者只能改自己的资料，且只有email/full_name/password生效，
//    请求里夹带的role/is_active字段直接丢弃，不报错
// 2. 管理员可以改任何用户的全部字段
// 静默丢弃而不是403：升级权限的尝试不应该让整个请求失败，
// 合法字段照常生效
type UpdateUserUseCase struct {
	userRepo    user.Repository
	userService user.Service
}

// NewUpdateUserUseCase 创建更新用户用例
func NewUpdateUserUseCase(userRepo user.Repository, userService user.Service) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, userService: userService}
}

// UpdateUserRequest 稀疏更新请求（nil字段表示不修改）
type UpdateUserRequest struct {
	Email    *string
	FullName *string
	Password *string
	Role     *string // 仅管理员生效
	IsActive *bool   // 仅管理员生效
}

// Actor 发起操作的用户（从JWT提取）
type Actor struct {
	UserID uint
	Role   user.Role
}

// Execute 执行更新
func (uc *UpdateUserUseCase) Execute(ctx context.Context, actor Actor, targetID uint, req UpdateUserRequest) (*UserInfo, error) {
	// 1. 权限检查：普通读者只能改自己
	isAdmin := actor.Role == user.RoleAdmin
	if !isAdmin && actor.UserID != targetID {
		return nil, apperrors.ErrForbidden
	}

	// 2. 查询目标用户
	u, err := uc.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// 3. 非管理员的role/is_active字段静默丢弃
	if !isAdmin {
		req.Role = nil
		req.IsActive = nil
	}

	// 4. 应用稀疏更新
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		role := user.Role(*req.Role)
		if !role.IsValid() {
			return nil, user.ErrInvalidRole
		}
		u.Role = role
	}
	if req.IsActive != nil {
		if *req.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}

	// 5. 密码修改走领域服务（强度校验+bcrypt加密+持久化）
	if req.Password != nil {
		if err := uc.userService.ChangePassword(ctx, u, *req.Password); err != nil {
			return nil, err
		}
	} else {
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	info := toUserInfo(u)
	return &info, nil
}
