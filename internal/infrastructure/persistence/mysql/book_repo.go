package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 一行一本物理副本,同一ISBN允许多行
// 3. LockCopiesByISBN是借书并发控制的核心:锁整个ISBN组的副本行
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建副本
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		Description:     b.Description,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找副本
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新副本信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		Description:     b.Description,
		CreatedAt:       b.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除副本
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询副本列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{})

	// 关键词搜索(书名或ISBN)
	if params.Search != "" {
		keyword := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR isbn LIKE ?", keyword, keyword)
	}
	if params.AuthorID != 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}
	// 仅可借:排除当前有未归还借阅的副本
	if params.AvailableOnly {
		query = query.Where(
			"id NOT IN (?)",
			getDB(ctx, r.db).Model(&TransactionModel{}).Select("book_id").Where("is_returned = ?", false),
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Order("id ASC").Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// CountByISBN 统计某ISBN组的副本总数
func (r *bookRepository) CountByISBN(ctx context.Context, isbn string) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计副本数失败")
	}
	return count, nil
}

// LockCopiesByISBN 锁定某ISBN组的全部副本行(SELECT ... FOR UPDATE)
// 并发控制要点:
// 1. 必须在TxManager开启的事务内调用,否则锁随语句结束立即释放
// 2. 两个并发借书请求借同一ISBN时,后到者在这里阻塞,
//    等先到者提交后才能继续,看到的未归还数已包含先到者的新记录
func (r *bookRepository) LockCopiesByISBN(ctx context.Context, isbn string) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("isbn = ?", isbn).
		Order("id ASC"). // 固定加锁顺序,避免交叉死锁
		Find(&models).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "锁定副本失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		ISBN:            model.ISBN,
		PublicationYear: model.PublicationYear,
		AuthorID:        model.AuthorID,
		Description:     model.Description,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
