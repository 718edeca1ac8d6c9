package transaction

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/transaction"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// Transactor 事务执行接口
// 由mysql.TxManager实现,定义成接口便于测试时用内存实现替换
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BorrowBookUseCase 借书用例
// 这是整个系统最核心的用例,涉及:事务处理、并发控制、可借数量推导
//
// 核心问题:重复借出
// 场景:某ISBN只剩1本可借,两个读者同时借
// 错误实现:
//  1. 推导可借数量 → 1
//  2. 判断够不够 → 够
//  3. 插入借阅记录
//     结果:两个请求都通过了步骤2,同一本书借给了两个人
//
// 正确实现(双保险):
//  1. 事务内SELECT FOR UPDATE锁定该ISBN组的全部副本行,
//     后到的请求在锁上排队,等先到者提交后重新推导可借数量
//  2. 数据库层(book_id, open_flag)唯一索引兜底:
//     即使锁被绕过,同一副本的第二条在借记录也会被拒绝
type BorrowBookUseCase struct {
	bookRepo book.Repository
	txRepo   transaction.Repository
	tx       Transactor
	events   EventPublisher
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	txRepo transaction.Repository,
	tx Transactor,
	events EventPublisher,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo: bookRepo,
		txRepo:   txRepo,
		tx:       tx,
		events:   events,
	}
}

// BorrowBookRequest 借书请求
type BorrowBookRequest struct {
	UserID uint // 借阅人（从JWT提取）
	BookID uint // 要借的副本ID
}

// TransactionInfo 借阅记录DTO
type TransactionInfo struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	BookID     uint   `json:"book_id"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date,omitempty"`
	IsReturned bool   `json:"is_returned"`
}

// Execute 执行借书
// 流程(全部在一个数据库事务内):
//  1. 查询副本,拿到所属ISBN
//  2. 锁定该ISBN组的全部副本行(SELECT FOR UPDATE)
//  3. 锁内重新统计未归还数,推导可借数量
//  4. 检查目标副本本身是否在借
//  5. 插入在借记录(open_flag=1)
//
// 提交后发布loan.borrowed事件(旁路,失败只记日志)
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*TransactionInfo, error) {
	start := time.Now()

	var loan *transaction.Transaction
	var isbn string

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查询副本
		b, err := uc.bookRepo.FindByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		isbn = b.ISBN

		// 2. 锁定ISBN组的全部副本行
		// 并发的借书请求在这里串行化:后到者阻塞到先到者提交
		copies, err := uc.bookRepo.LockCopiesByISBN(txCtx, b.ISBN)
		if err != nil {
			return err
		}

		// 3. 锁内推导可借数量
		// 必须在拿到锁之后统计,才能看到先到者刚插入的在借记录
		open, err := uc.txRepo.CountOpenByISBN(txCtx, b.ISBN)
		if err != nil {
			return err
		}
		if int64(len(copies))-open <= 0 {
			return transaction.ErrNoAvailableCopies
		}

		// 4. 目标副本本身必须可借
		// 整组还有余量但用户指定的这本恰好在借,同样拒绝
		_, err = uc.txRepo.FindOpenByBookID(txCtx, req.BookID)
		if err == nil {
			return transaction.ErrNoAvailableCopies
		}
		if err != transaction.ErrTransactionNotFound {
			return err
		}

		// 5. 插入在借记录
		// 唯一索引兜底:并发异常时Create返回ErrNoAvailableCopies
		loan = transaction.NewTransaction(req.UserID, req.BookID, time.Now())
		return uc.txRepo.Create(txCtx, loan)
	})

	if err != nil {
		if err == transaction.ErrNoAvailableCopies {
			metrics.LoansDeniedTotal.Inc()
		}
		return nil, err
	}

	metrics.LoansBorrowedTotal.Inc()
	metrics.BorrowDuration.Observe(time.Since(start).Seconds())

	// 事务已提交,事件发布失败不回滚,只记日志
	event := mq.NewLoanEvent(loan.ID, loan.UserID, loan.BookID, isbn, loan.BorrowDate, nil)
	if err := uc.events.Publish(ctx, mq.RoutingKeyLoanBorrowed, event); err != nil {
		log.Printf("发布借出事件失败: %v", err)
	}

	info := toTransactionInfo(loan)
	return &info, nil
}

// toTransactionInfo 领域实体 → 应用层DTO
func toTransactionInfo(t *transaction.Transaction) TransactionInfo {
	info := TransactionInfo{
		ID:         t.ID,
		UserID:     t.UserID,
		BookID:     t.BookID,
		BorrowDate: t.BorrowDate.UTC().Format(time.RFC3339),
		IsReturned: t.IsReturned,
	}
	if t.ReturnDate != nil {
		info.ReturnDate = t.ReturnDate.UTC().Format(time.RFC3339)
	}
	return info
}
