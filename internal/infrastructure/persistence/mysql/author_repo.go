package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		Name:        a.Name,
		Email:       a.Email,
		Biography:   a.Biography,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		Website:     a.Website,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// Update 更新作者信息
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Biography:   a.Biography,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		Website:     a.Website,
		CreatedAt:   a.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}

	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除作者
// 业务规则:名下尚有图书的作者不能删除
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	// 先检查名下是否有图书
	var bookCount int64
	if err := db.Model(&BookModel{}).Where("author_id = ?", id).Count(&bookCount).Error; err != nil {
		return apperrors.Wrap(err, "查询作者名下图书失败")
	}
	if bookCount > 0 {
		return author.ErrAuthorHasBooks
	}

	result := db.Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

// List 分页查询作者列表
func (r *authorRepository) List(ctx context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	var models []AuthorModel
	var total int64

	query := getDB(ctx, r.db).Model(&AuthorModel{})

	if params.Name != "" {
		query = query.Where("name LIKE ?", "%"+params.Name+"%")
	}
	if params.Nationality != "" {
		query = query.Where("nationality = ?", params.Nationality)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Order("id ASC").Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}

	return authors, total, nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:          model.ID,
		Name:        model.Name,
		Email:       model.Email,
		Biography:   model.Biography,
		BirthDate:   model.BirthDate,
		Nationality: model.Nationality,
		Website:     model.Website,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
