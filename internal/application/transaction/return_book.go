package transaction

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ReturnBookUseCase 还书用例
// 设计说明：
// 1. 归还靠条件UPDATE原子翻转(WHERE is_returned=0),
//    并发归还同一条记录只有一个成功,另一个收到"已归还"
// 2. 已归还的记录重复归还是冲突(409),不是参数错误
type ReturnBookUseCase struct {
	txRepo   transaction.Repository
	bookRepo book.Repository
	events   EventPublisher
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	txRepo transaction.Repository,
	bookRepo book.Repository,
	events EventPublisher,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		txRepo:   txRepo,
		bookRepo: bookRepo,
		events:   events,
	}
}

// ReturnBookRequest 还书请求
type ReturnBookRequest struct {
	Actor         Actor // 发起人（从JWT提取）
	TransactionID uint  // 借阅记录ID
}

// Actor 发起操作的用户
type Actor struct {
	UserID uint
	Role   user.Role
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// Execute 执行还书
// 权限规则:普通读者只能归还自己的借阅,管理员可以代任何人归还
func (uc *ReturnBookUseCase) Execute(ctx context.Context, req ReturnBookRequest) (*TransactionInfo, error) {
	// 1. 查询借阅记录
	loan, err := uc.txRepo.FindByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查
	if !req.Actor.IsAdmin() && !loan.IsOwnedBy(req.Actor.UserID) {
		return nil, apperrors.ErrForbidden
	}

	// 3. 原子翻转为已归还
	returnDate := time.Now()
	if err := uc.txRepo.MarkReturned(ctx, loan.ID, returnDate); err != nil {
		return nil, err
	}

	loan.IsReturned = true
	loan.ReturnDate = &returnDate

	metrics.LoansReturnedTotal.Inc()

	// 4. 发布loan.returned事件(旁路)
	isbn := ""
	if b, err := uc.bookRepo.FindByID(ctx, loan.BookID); err == nil {
		isbn = b.ISBN
	}
	event := mq.NewLoanEvent(loan.ID, loan.UserID, loan.BookID, isbn, loan.BorrowDate, &returnDate)
	if err := uc.events.Publish(ctx, mq.RoutingKeyLoanReturned, event); err != nil {
		log.Printf("发布归还事件失败: %v", err)
	}

	info := toTransactionInfo(loan)
	return &info, nil
}
