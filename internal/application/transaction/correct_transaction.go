package transaction

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/transaction"
)

// CorrectTransactionUseCase 借阅台账修正用例（仅管理员）
// 设计说明：
// 1. 正常业务只通过借书/还书两个操作写台账,
//    修正接口是处理录入错误的后门(比如借错人、日期录错)
// 2. 修正必须在事务内执行:把一条记录改成"在借"时,
//    唯一索引会拦截目标副本已有在借记录的情况
type CorrectTransactionUseCase struct {
	txRepo transaction.Repository
	tx     Transactor
}

// NewCorrectTransactionUseCase 创建台账修正用例
func NewCorrectTransactionUseCase(txRepo transaction.Repository, tx Transactor) *CorrectTransactionUseCase {
	return &CorrectTransactionUseCase{txRepo: txRepo, tx: tx}
}

// CorrectTransactionRequest 稀疏修正请求（nil字段表示不修改）
type CorrectTransactionRequest struct {
	UserID     *uint
	BookID     *uint
	BorrowDate *time.Time
	ReturnDate *time.Time // 指向零值时间表示清除归还时间（改回在借）
	IsReturned *bool
}

// Update 修正借阅记录
func (uc *CorrectTransactionUseCase) Update(ctx context.Context, id uint, req CorrectTransactionRequest) (*TransactionInfo, error) {
	var loan *transaction.Transaction

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		loan, err = uc.txRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if req.UserID != nil {
			loan.UserID = *req.UserID
		}
		if req.BookID != nil {
			loan.BookID = *req.BookID
		}
		if req.BorrowDate != nil {
			loan.BorrowDate = *req.BorrowDate
		}
		if req.IsReturned != nil {
			loan.IsReturned = *req.IsReturned
			if !loan.IsReturned {
				loan.ReturnDate = nil
			}
		}
		if req.ReturnDate != nil {
			if req.ReturnDate.IsZero() {
				loan.ReturnDate = nil
				loan.IsReturned = false
			} else {
				loan.ReturnDate = req.ReturnDate
				loan.IsReturned = true
			}
		}

		return uc.txRepo.Update(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}

	info := toTransactionInfo(loan)
	return &info, nil
}

// Delete 删除借阅记录
func (uc *CorrectTransactionUseCase) Delete(ctx context.Context, id uint) error {
	return uc.txRepo.Delete(ctx, id)
}
