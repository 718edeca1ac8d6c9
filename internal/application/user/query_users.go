package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// GetUserUseCase 查询单个用户用例
// 权限规则：普通读者只能查自己，管理员可以查任何人
type GetUserUseCase struct {
	userRepo user.Repository
}

// NewGetUserUseCase 创建查询用户用例
func NewGetUserUseCase(userRepo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute 执行查询
func (uc *GetUserUseCase) Execute(ctx context.Context, actor Actor, targetID uint) (*UserInfo, error) {
	if actor.Role != user.RoleAdmin && actor.UserID != targetID {
		return nil, apperrors.ErrForbidden
	}

	u, err := uc.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	info := toUserInfo(u)
	return &info, nil
}

// ListUsersUseCase 用户列表用例（仅管理员）
type ListUsersUseCase struct {
	userRepo user.Repository
}

// NewListUsersUseCase 创建用户列表用例
func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// ListUsersRequest 列表请求
type ListUsersRequest struct {
	Page     int
	PageSize int
	Role     string
	IsActive *bool
}

// Execute 执行查询
func (uc *ListUsersUseCase) Execute(ctx context.Context, req ListUsersRequest) ([]UserInfo, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	users, total, err := uc.userRepo.List(ctx, user.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Role:     user.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]UserInfo, len(users))
	for i, u := range users {
		infos[i] = toUserInfo(u)
	}

	return infos, total, nil
}

// DeleteUserUseCase 删除用户用例（仅管理员）
type DeleteUserUseCase struct {
	userRepo user.Repository
}

// NewDeleteUserUseCase 创建删除用户用例
func NewDeleteUserUseCase(userRepo user.Repository) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo}
}

// Execute 执行删除
// 管理员不能删除自己（防止把最后一个管理员删没）
func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor Actor, targetID uint) error {
	if actor.UserID == targetID {
		return apperrors.New(apperrors.ErrCodeBusinessError, "不能删除当前登录的账号")
	}

	return uc.userRepo.Delete(ctx, targetID)
}
