package transaction

import (
	"context"
	"time"
)

// Repository 借阅仓储接口
type Repository interface {
	// Create 创建借阅记录
	// 实现方需保证同一副本不会同时存在两条未归还记录:
	// 违反时返回ErrNoAvailableCopies(数据库唯一约束兜底)
	Create(ctx context.Context, tx *Transaction) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Transaction, error)

	// MarkReturned 归还:把未归还记录翻转为已归还
	// 必须原子执行(UPDATE ... WHERE is_returned=0),
	// 记录不存在返回ErrTransactionNotFound,已归还返回ErrAlreadyReturned
	MarkReturned(ctx context.Context, id uint, returnDate time.Time) error

	// Update 更新借阅记录(管理员数据修正)
	Update(ctx context.Context, tx *Transaction) error

	// Delete 删除借阅记录(管理员数据修正)
	Delete(ctx context.Context, id uint) error

	// CountOpenByISBN 统计某ISBN组当前未归还的借阅数
	CountOpenByISBN(ctx context.Context, isbn string) (int64, error)

	// FindOpenByBookID 查找某副本当前未归还的借阅记录
	// 不存在时返回ErrTransactionNotFound
	FindOpenByBookID(ctx context.Context, bookID uint) (*Transaction, error)

	// List 分页查询借阅记录
	List(ctx context.Context, params ListParams) ([]*Transaction, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int   // 页码（从1开始）
	PageSize int   // 每页数量
	UserID   uint  // 按借阅人过滤（0表示不过滤）
	BookID   uint  // 按副本过滤（0表示不过滤）
	IsOpen   *bool // 按归还状态过滤（nil表示不过滤，true表示仅未归还）
}
