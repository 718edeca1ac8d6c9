package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/transaction"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// transactionRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/transaction/repository.go定义的接口
// 2. Create依赖(book_id, open_flag)唯一索引兜底:
//    即使上层行锁失效,同一副本的第二条在借记录也会被数据库拒绝
// 3. MarkReturned用条件UPDATE原子翻转状态,零行命中后再查询区分原因
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建借阅仓储
func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &transactionRepository{db: db}
}

// openFlagValue 在借记录的open_flag值
var openFlagValue int8 = 1

// Create 创建借阅记录
// 新记录一律在借(open_flag=1),唯一键冲突说明该副本已有在借记录,
// 转换为"无可借副本"错误(并发兜底,正常路径不会走到这里)
func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	model := &TransactionModel{
		UserID:     t.UserID,
		BookID:     t.BookID,
		BorrowDate: t.BorrowDate,
		IsReturned: false,
		OpenFlag:   &openFlagValue,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return transaction.ErrNoAvailableCopies
		}
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*transaction.Transaction, error) {
	var model TransactionModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toTransactionEntity(&model), nil
}

// MarkReturned 归还:原子翻转未归还记录
// UPDATE ... WHERE id=? AND is_returned=0 保证并发归还只有一个成功;
// open_flag清为NULL,释放(book_id, open_flag)唯一键,副本重新可借
func (r *transactionRepository) MarkReturned(ctx context.Context, id uint, returnDate time.Time) error {
	db := getDB(ctx, r.db)

	result := db.Model(&TransactionModel{}).
		Where("id = ? AND is_returned = ?", id, false).
		Updates(map[string]interface{}{
			"is_returned": true,
			"return_date": returnDate,
			"open_flag":   nil,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "归还失败")
	}

	if result.RowsAffected == 0 {
		// 零行命中:记录不存在,或已归还,再查一次确定原因
		var model TransactionModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return transaction.ErrTransactionNotFound
			}
			return apperrors.Wrap(err, "查询借阅记录失败")
		}
		return transaction.ErrAlreadyReturned
	}

	return nil
}

// Update 更新借阅记录(管理员数据修正)
// open_flag必须与is_returned保持一致,否则唯一键兜底失效
func (r *transactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	var openFlag *int8
	if !t.IsReturned {
		openFlag = &openFlagValue
	}

	result := getDB(ctx, r.db).Model(&TransactionModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"user_id":     t.UserID,
			"book_id":     t.BookID,
			"borrow_date": t.BorrowDate,
			"return_date": t.ReturnDate,
			"is_returned": t.IsReturned,
			"open_flag":   openFlag,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			// 修正为在借时,目标副本已有在借记录
			return transaction.ErrNoAvailableCopies
		}
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// Delete 删除借阅记录(管理员数据修正)
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&TransactionModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// CountOpenByISBN 统计某ISBN组当前未归还的借阅数
// JOIN图书表按ISBN过滤,必须与LockCopiesByISBN在同一事务内调用
// 才能读到锁保护下的一致快照
func (r *transactionRepository) CountOpenByISBN(ctx context.Context, isbn string) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&TransactionModel{}).
		Joins("JOIN books ON books.id = transactions.book_id").
		Where("books.isbn = ? AND transactions.is_returned = ?", isbn, false).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计未归还借阅数失败")
	}

	return count, nil
}

// FindOpenByBookID 查找某副本当前未归还的借阅记录
func (r *transactionRepository) FindOpenByBookID(ctx context.Context, bookID uint) (*transaction.Transaction, error) {
	var model TransactionModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND is_returned = ?", bookID, false).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toTransactionEntity(&model), nil
}

// List 分页查询借阅记录
func (r *transactionRepository) List(ctx context.Context, params transaction.ListParams) ([]*transaction.Transaction, int64, error) {
	var models []TransactionModel
	var total int64

	query := getDB(ctx, r.db).Model(&TransactionModel{})

	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.BookID != 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.IsOpen != nil {
		query = query.Where("is_returned = ?", !*params.IsOpen)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Order("borrow_date DESC").Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	txs := make([]*transaction.Transaction, len(models))
	for i := range models {
		txs[i] = toTransactionEntity(&models[i])
	}

	return txs, total, nil
}

// toTransactionEntity GORM模型 → 领域实体
func toTransactionEntity(model *TransactionModel) *transaction.Transaction {
	return &transaction.Transaction{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		BorrowDate: model.BorrowDate,
		ReturnDate: model.ReturnDate,
		IsReturned: model.IsReturned,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
