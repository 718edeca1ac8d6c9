package transaction

import (
	"context"

	"github.com/xiebiao/library/internal/domain/transaction"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// QueryTransactionsUseCase 借阅记录查询用例
// 权限规则：
// 1. 普通读者只能看自己的借阅记录
// 2. 管理员可以看全量台账,并按用户/副本过滤
type QueryTransactionsUseCase struct {
	txRepo transaction.Repository
}

// NewQueryTransactionsUseCase 创建借阅查询用例
func NewQueryTransactionsUseCase(txRepo transaction.Repository) *QueryTransactionsUseCase {
	return &QueryTransactionsUseCase{txRepo: txRepo}
}

// Get 查询单条借阅记录
func (uc *QueryTransactionsUseCase) Get(ctx context.Context, actor Actor, id uint) (*TransactionInfo, error) {
	loan, err := uc.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !loan.IsOwnedBy(actor.UserID) {
		// 对普通读者隐藏他人记录的存在性
		return nil, transaction.ErrTransactionNotFound
	}

	info := toTransactionInfo(loan)
	return &info, nil
}

// ListTransactionsRequest 列表请求
type ListTransactionsRequest struct {
	Page     int
	PageSize int
	UserID   uint  // 按借阅人过滤（仅管理员可指定他人）
	BookID   uint  // 按副本过滤
	IsOpen   *bool // 按归还状态过滤
}

// List 分页查询借阅记录
func (uc *QueryTransactionsUseCase) List(ctx context.Context, actor Actor, req ListTransactionsRequest) ([]TransactionInfo, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	// 普通读者强制过滤为自己的记录
	if !actor.IsAdmin() {
		if req.UserID != 0 && req.UserID != actor.UserID {
			return nil, 0, apperrors.ErrForbidden
		}
		req.UserID = actor.UserID
	}

	loans, total, err := uc.txRepo.List(ctx, transaction.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		UserID:   req.UserID,
		BookID:   req.BookID,
		IsOpen:   req.IsOpen,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]TransactionInfo, len(loans))
	for i, loan := range loans {
		infos[i] = toTransactionInfo(loan)
	}

	return infos, total, nil
}
