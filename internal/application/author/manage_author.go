package author

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ManageAuthorUseCase 作者管理用例
// 设计说明：作者是纯CRUD资源，没有跨实体的业务规则，
// 合并为一个用例结构，不必每个操作一个文件
type ManageAuthorUseCase struct {
	authorRepo author.Repository
	bookRepo   book.Repository
}

// NewManageAuthorUseCase 创建作者管理用例
func NewManageAuthorUseCase(authorRepo author.Repository, bookRepo book.Repository) *ManageAuthorUseCase {
	return &ManageAuthorUseCase{authorRepo: authorRepo, bookRepo: bookRepo}
}

// BookSummary 作者详情里内嵌的图书摘要
type BookSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// AuthorInfo 作者信息DTO
// Books只在详情查询时填充，列表查询为空（避免N+1查询）
type AuthorInfo struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email,omitempty"`
	Biography   string        `json:"biography,omitempty"`
	BirthDate   *time.Time    `json:"birth_date,omitempty"`
	Nationality string        `json:"nationality,omitempty"`
	Website     string        `json:"website,omitempty"`
	Books       []BookSummary `json:"books,omitempty"`
}

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	Name        string
	Email       string
	Biography   string
	BirthDate   *time.Time
	Nationality string
	Website     string
}

// Create 创建作者（仅管理员）
func (uc *ManageAuthorUseCase) Create(ctx context.Context, req CreateAuthorRequest) (*AuthorInfo, error) {
	if req.Name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
	}

	a := author.NewAuthor(req.Name, req.Biography)
	a.Email = req.Email
	a.BirthDate = req.BirthDate
	a.Nationality = req.Nationality
	a.Website = req.Website

	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	info := toAuthorInfo(a)
	return &info, nil
}

// Get 查询作者详情（内嵌名下图书摘要）
func (uc *ManageAuthorUseCase) Get(ctx context.Context, id uint) (*AuthorInfo, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toAuthorInfo(a)

	// 名下图书摘要,查询失败不影响作者主体信息
	books, _, err := uc.bookRepo.List(ctx, book.ListParams{Page: 1, PageSize: 100, AuthorID: id})
	if err == nil {
		info.Books = make([]BookSummary, len(books))
		for i, b := range books {
			info.Books[i] = BookSummary{ID: b.ID, Title: b.Title, ISBN: b.ISBN}
		}
	}

	return &info, nil
}

// UpdateAuthorRequest 稀疏更新请求（nil字段表示不修改）
type UpdateAuthorRequest struct {
	Name        *string
	Email       *string
	Biography   *string
	BirthDate   *time.Time
	Nationality *string
	Website     *string
}

// Update 更新作者（仅管理员）
func (uc *ManageAuthorUseCase) Update(ctx context.Context, id uint, req UpdateAuthorRequest) (*AuthorInfo, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
		}
		a.Name = *req.Name
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.Biography != nil {
		a.Biography = *req.Biography
	}
	if req.BirthDate != nil {
		a.BirthDate = req.BirthDate
	}
	if req.Nationality != nil {
		a.Nationality = *req.Nationality
	}
	if req.Website != nil {
		a.Website = *req.Website
	}

	if err := uc.authorRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	info := toAuthorInfo(a)
	return &info, nil
}

// Delete 删除作者（仅管理员，名下有图书时拒绝）
func (uc *ManageAuthorUseCase) Delete(ctx context.Context, id uint) error {
	return uc.authorRepo.Delete(ctx, id)
}

// ListAuthorsRequest 列表请求
type ListAuthorsRequest struct {
	Page        int
	PageSize    int
	Name        string
	Nationality string
}

// List 分页查询作者列表
func (uc *ManageAuthorUseCase) List(ctx context.Context, req ListAuthorsRequest) ([]AuthorInfo, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	authors, total, err := uc.authorRepo.List(ctx, author.ListParams{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Name:        req.Name,
		Nationality: req.Nationality,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]AuthorInfo, len(authors))
	for i, a := range authors {
		infos[i] = toAuthorInfo(a)
	}

	return infos, total, nil
}

// toAuthorInfo 领域实体 → 应用层DTO
func toAuthorInfo(a *author.Author) AuthorInfo {
	return AuthorInfo{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Biography:   a.Biography,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		Website:     a.Website,
	}
}
