package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	FindByID(ctx context.Context, id uint) (*Author, error)

	// Update 更新作者信息
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者（名下有图书时返回ErrAuthorHasBooks）
	Delete(ctx context.Context, id uint) error

	// List 分页查询作者列表（name支持模糊匹配）
	List(ctx context.Context, params ListParams) ([]*Author, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page        int    // 页码（从1开始）
	PageSize    int    // 每页数量
	Name        string // 按姓名模糊查询（空值表示不过滤）
	Nationality string // 按国籍过滤（空值表示不过滤）
}
