package book

import (
	"context"
)

// Repository 图书仓储接口
type Repository interface {
	// Create 创建副本
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找副本
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新副本信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除副本
	Delete(ctx context.Context, id uint) error

	// List 分页查询副本列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// CountByISBN 统计某ISBN组的副本总数
	CountByISBN(ctx context.Context, isbn string) (int64, error)

	// LockCopiesByISBN 锁定某ISBN组的全部副本行(SELECT ... FOR UPDATE)
	// 必须在事务内调用,借书流程用它把并发借阅串行化到ISBN组粒度
	LockCopiesByISBN(ctx context.Context, isbn string) ([]*Book, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page          int    // 页码（从1开始）
	PageSize      int    // 每页数量
	Search        string // 按书名/ISBN模糊查询（空值表示不过滤）
	AuthorID      uint   // 按作者过滤（0表示不过滤）
	AvailableOnly bool   // 仅返回当前可借的副本（排除在借副本）
}
