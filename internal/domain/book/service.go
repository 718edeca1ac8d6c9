package book

import (
	"context"
)

// LoanCounter 未归还借阅计数接口
// 设计说明:可借数量=副本总数-未归还借阅数,后者属于借阅上下文,
// 这里只声明图书上下文需要的最小接口,由transaction仓储实现
type LoanCounter interface {
	// CountOpenByISBN 统计某ISBN组当前未归还的借阅数
	CountOpenByISBN(ctx context.Context, isbn string) (int64, error)
}

// AvailabilityService 可借数量推导服务
// 业务规则:
// 1. 可借数量永远是实时推导值,任何地方都不允许存储"可借副本数"字段
// 2. 未收录的ISBN返回{0,0},不报错(查询一个不存在的书目不是异常)
// 3. 按副本ID查询时,副本不存在返回ErrBookNotFound
type AvailabilityService struct {
	books Repository
	loans LoanCounter
}

// NewAvailabilityService 创建可借数量推导服务
func NewAvailabilityService(books Repository, loans LoanCounter) *AvailabilityService {
	return &AvailabilityService{books: books, loans: loans}
}

// ByISBN 推导某ISBN组的可借情况
func (s *AvailabilityService) ByISBN(ctx context.Context, isbn string) (*Availability, error) {
	total, err := s.books.CountByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	// 未收录的ISBN:总数和可借数都是0
	if total == 0 {
		return &Availability{TotalCopies: 0, AvailableCopies: 0}, nil
	}

	open, err := s.loans.CountOpenByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	available := int(total - open)
	// 数据修正期间未归还数可能暂时超过副本数,可借数量下限为0
	if available < 0 {
		available = 0
	}

	return &Availability{
		TotalCopies:     int(total),
		AvailableCopies: available,
	}, nil
}

// ByBookID 按副本ID推导其所属ISBN组的可借情况
// 副本不存在时返回ErrBookNotFound（与未收录ISBN的语义不同）
func (s *AvailabilityService) ByBookID(ctx context.Context, bookID uint) (*Availability, error) {
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.ByISBN(ctx, b.ISBN)
}
