package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
)

// ManageBookUseCase 馆藏管理用例
// 设计说明：
// 1. 录入副本时校验ISBN格式和作者存在性
// 2. 同一ISBN再次录入就是加一本副本，不是错误
// 3. 删除副本前检查是否在借（在借副本删除会让台账悬空）
type ManageBookUseCase struct {
	bookRepo   book.Repository
	authorRepo author.Repository
	txRepo     transaction.Repository
}

// NewManageBookUseCase 创建馆藏管理用例
func NewManageBookUseCase(
	bookRepo book.Repository,
	authorRepo author.Repository,
	txRepo transaction.Repository,
) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		txRepo:     txRepo,
	}
}

// BookInfo 副本信息DTO
type BookInfo struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year,omitempty"`
	AuthorID        uint   `json:"author_id"`
	Description     string `json:"description,omitempty"`
}

// CreateBookRequest 录入副本请求
type CreateBookRequest struct {
	Title           string
	ISBN            string
	PublicationYear int
	AuthorID        uint
	Description     string
}

// Create 录入副本（仅管理员）
func (uc *ManageBookUseCase) Create(ctx context.Context, req CreateBookRequest) (*BookInfo, error) {
	if !book.IsValidISBN(req.ISBN) {
		return nil, book.ErrInvalidISBN
	}

	// 作者必须存在
	if _, err := uc.authorRepo.FindByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	b := book.NewBook(req.Title, req.ISBN, req.PublicationYear, req.AuthorID, req.Description)
	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	info := toBookInfo(b)
	return &info, nil
}

// Get 查询副本
func (uc *ManageBookUseCase) Get(ctx context.Context, id uint) (*BookInfo, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toBookInfo(b)
	return &info, nil
}

// UpdateBookRequest 稀疏更新请求（nil字段表示不修改）
type UpdateBookRequest struct {
	Title           *string
	ISBN            *string
	PublicationYear *int
	AuthorID        *uint
	Description     *string
}

// Update 更新副本（仅管理员）
// 修改ISBN相当于把副本移到另一个ISBN组,可借数量随之变化
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req UpdateBookRequest) (*BookInfo, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ISBN != nil {
		if !book.IsValidISBN(*req.ISBN) {
			return nil, book.ErrInvalidISBN
		}
		b.ISBN = *req.ISBN
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.PublicationYear != nil {
		b.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		if _, err := uc.authorRepo.FindByID(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
		b.AuthorID = *req.AuthorID
	}
	if req.Description != nil {
		b.Description = *req.Description
	}

	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	info := toBookInfo(b)
	return &info, nil
}

// Delete 删除副本（仅管理员）
// 业务规则：在借的副本不能删除
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.bookRepo.FindByID(ctx, id); err != nil {
		return err
	}

	// 检查是否有未归还的借阅
	_, err := uc.txRepo.FindOpenByBookID(ctx, id)
	if err == nil {
		return book.ErrBookBorrowed
	}
	if err != transaction.ErrTransactionNotFound {
		return err
	}

	return uc.bookRepo.Delete(ctx, id)
}

// ListBooksRequest 列表请求
type ListBooksRequest struct {
	Page          int
	PageSize      int
	Search        string
	AuthorID      uint
	AvailableOnly bool
}

// List 分页查询副本列表
func (uc *ManageBookUseCase) List(ctx context.Context, req ListBooksRequest) ([]BookInfo, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	books, total, err := uc.bookRepo.List(ctx, book.ListParams{
		Page:          req.Page,
		PageSize:      req.PageSize,
		Search:        req.Search,
		AuthorID:      req.AuthorID,
		AvailableOnly: req.AvailableOnly,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]BookInfo, len(books))
	for i, b := range books {
		infos[i] = toBookInfo(b)
	}

	return infos, total, nil
}

// toBookInfo 领域实体 → 应用层DTO
func toBookInfo(b *book.Book) BookInfo {
	return BookInfo{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		Description:     b.Description,
	}
}
