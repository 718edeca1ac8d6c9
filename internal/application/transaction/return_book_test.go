package transaction

import (
	"context"
	"testing"

	"github.com/xiebiao/library/internal/domain/transaction"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// TestReturnBook_Success 测试正常还书
func TestReturnBook_Success(t *testing.T) {
	store := newMemStore()
	b := store.addCopy("Go语言实战", "9787115428028")
	borrow, ret := newBorrowFixture(store)
	ctx := context.Background()

	loan, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b.ID})
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	actor := Actor{UserID: 1, Role: user.RoleRegular}
	info, err := ret.Execute(ctx, ReturnBookRequest{Actor: actor, TransactionID: loan.ID})
	if err != nil {
		t.Fatalf("还书失败: %v", err)
	}

	if !info.IsReturned {
		t.Error("归还后应为已归还状态")
	}
	if info.ReturnDate == "" {
		t.Error("归还后应有归还时间")
	}
}

// TestReturnBook_Twice 测试重复归还
// 重复归还是状态冲突,返回"已归还"错误(HTTP映射为409)
func TestReturnBook_Twice(t *testing.T) {
	store := newMemStore()
	b := store.addCopy("Go语言实战", "9787115428028")
	borrow, ret := newBorrowFixture(store)
	ctx := context.Background()

	loan, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b.ID})
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	actor := Actor{UserID: 1, Role: user.RoleRegular}
	if _, err := ret.Execute(ctx, ReturnBookRequest{Actor: actor, TransactionID: loan.ID}); err != nil {
		t.Fatalf("首次归还失败: %v", err)
	}

	_, err = ret.Execute(ctx, ReturnBookRequest{Actor: actor, TransactionID: loan.ID})
	if err != transaction.ErrAlreadyReturned {
		t.Errorf("重复归还应返回ErrAlreadyReturned，实际%v", err)
	}
}

// TestReturnBook_Forbidden 测试归还他人借阅
func TestReturnBook_Forbidden(t *testing.T) {
	store := newMemStore()
	b := store.addCopy("Go语言实战", "9787115428028")
	borrow, ret := newBorrowFixture(store)
	ctx := context.Background()

	loan, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b.ID})
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	// 普通读者不能归还他人的借阅
	other := Actor{UserID: 2, Role: user.RoleRegular}
	if _, err := ret.Execute(ctx, ReturnBookRequest{Actor: other, TransactionID: loan.ID}); err != apperrors.ErrForbidden {
		t.Errorf("期望ErrForbidden，实际%v", err)
	}

	// 管理员可以代任何人归还
	admin := Actor{UserID: 99, Role: user.RoleAdmin}
	if _, err := ret.Execute(ctx, ReturnBookRequest{Actor: admin, TransactionID: loan.ID}); err != nil {
		t.Errorf("管理员代还应成功: %v", err)
	}
}

// TestReturnBook_NotFound 测试归还不存在的记录
func TestReturnBook_NotFound(t *testing.T) {
	_, ret := newBorrowFixture(newMemStore())

	actor := Actor{UserID: 1, Role: user.RoleRegular}
	_, err := ret.Execute(context.Background(), ReturnBookRequest{Actor: actor, TransactionID: 999})
	if err != transaction.ErrTransactionNotFound {
		t.Errorf("期望ErrTransactionNotFound，实际%v", err)
	}
}

// TestQueryTransactions_Scoping 测试借阅记录的可见范围
func TestQueryTransactions_Scoping(t *testing.T) {
	store := newMemStore()
	b1 := store.addCopy("Go语言实战", "9787115428028")
	b2 := store.addCopy("Redis设计与实现", "9787111464747")
	borrow, _ := newBorrowFixture(store)
	ctx := context.Background()

	loan1, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 1, BookID: b1.ID})
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}
	if _, err := borrow.Execute(ctx, BorrowBookRequest{UserID: 2, BookID: b2.ID}); err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	query := NewQueryTransactionsUseCase(&memTxRepo{store: store})

	// 普通读者只能看到自己的记录
	reader := Actor{UserID: 1, Role: user.RoleRegular}
	list, total, err := query.List(ctx, reader, ListTransactionsRequest{})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].UserID != 1 {
		t.Errorf("普通读者应只看到自己的1条记录，实际total=%d", total)
	}

	// 普通读者指定他人user_id应被拒绝
	if _, _, err := query.List(ctx, reader, ListTransactionsRequest{UserID: 2}); err != apperrors.ErrForbidden {
		t.Errorf("期望ErrForbidden，实际%v", err)
	}

	// 管理员看全量
	admin := Actor{UserID: 99, Role: user.RoleAdmin}
	_, total, err = query.List(ctx, admin, ListTransactionsRequest{})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 {
		t.Errorf("管理员应看到2条记录，实际%d", total)
	}

	// 普通读者查他人的单条记录:隐藏存在性,返回不存在
	loan2ID := loan1.ID + 1
	if _, err := query.Get(ctx, reader, loan2ID); err != transaction.ErrTransactionNotFound {
		t.Errorf("期望ErrTransactionNotFound，实际%v", err)
	}
}
