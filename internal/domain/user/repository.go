package user

import (
	"context"
)

// Repository 用户仓储接口（依赖倒置原则）
// 由domain层定义接口，infrastructure层实现，便于Mock测试
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户（软删除）
	Delete(ctx context.Context, id uint) error

	// List 分页查询用户列表
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int   // 页码（从1开始）
	PageSize int   // 每页数量
	Role     Role  // 按角色过滤（空值表示不过滤）
	IsActive *bool // 按启用状态过滤（nil表示不过滤）
}
