package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// AvailabilityUseCase 可借数量查询用例
// 可借数量永远是查询时实时推导的,这里只是领域服务的薄封装
type AvailabilityUseCase struct {
	availability *book.AvailabilityService
	bookRepo     book.Repository
}

// NewAvailabilityUseCase 创建可借数量查询用例
func NewAvailabilityUseCase(availability *book.AvailabilityService, bookRepo book.Repository) *AvailabilityUseCase {
	return &AvailabilityUseCase{availability: availability, bookRepo: bookRepo}
}

// AvailabilityInfo 可借情况DTO
type AvailabilityInfo struct {
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// ByISBN 查询某ISBN组的可借情况
// 未收录的ISBN返回{0,0}
func (uc *AvailabilityUseCase) ByISBN(ctx context.Context, isbn string) (*AvailabilityInfo, error) {
	avail, err := uc.availability.ByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	return &AvailabilityInfo{
		ISBN:            isbn,
		TotalCopies:     avail.TotalCopies,
		AvailableCopies: avail.AvailableCopies,
	}, nil
}

// ByBookID 按副本ID查询其所属ISBN组的可借情况
// 副本不存在时返回ErrBookNotFound
func (uc *AvailabilityUseCase) ByBookID(ctx context.Context, bookID uint) (*AvailabilityInfo, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avail, err := uc.availability.ByISBN(ctx, b.ISBN)
	if err != nil {
		return nil, err
	}

	return &AvailabilityInfo{
		ISBN:            b.ISBN,
		TotalCopies:     avail.TotalCopies,
		AvailableCopies: avail.AvailableCopies,
	}, nil
}
