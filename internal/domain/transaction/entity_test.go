package transaction

import (
	"testing"
	"time"
)

// TestTransaction_New 测试新建借阅记录的初始状态
func TestTransaction_New(t *testing.T) {
	borrowDate := time.Now()
	tx := NewTransaction(1, 2, borrowDate)

	if tx.UserID != 1 || tx.BookID != 2 {
		t.Errorf("ID字段不正确: %+v", tx)
	}
	if !tx.IsOpen() {
		t.Error("新建记录应为未归还状态")
	}
	if tx.ReturnDate != nil {
		t.Error("新建记录不应有归还时间")
	}
}

// TestTransaction_Close 测试归还状态转换
func TestTransaction_Close(t *testing.T) {
	tx := NewTransaction(1, 2, time.Now())

	returnDate := time.Now().Add(7 * 24 * time.Hour)
	if err := tx.Close(returnDate); err != nil {
		t.Fatalf("归还失败: %v", err)
	}

	if tx.IsOpen() {
		t.Error("归还后应为已归还状态")
	}
	if tx.ReturnDate == nil || !tx.ReturnDate.Equal(returnDate) {
		t.Errorf("归还时间不正确: %v", tx.ReturnDate)
	}
}

// TestTransaction_Close_Twice 测试重复归还
// 状态机只有未归还→已归还一条合法转换
func TestTransaction_Close_Twice(t *testing.T) {
	tx := NewTransaction(1, 2, time.Now())

	first := time.Now()
	if err := tx.Close(first); err != nil {
		t.Fatalf("首次归还失败: %v", err)
	}

	if err := tx.Close(time.Now().Add(time.Hour)); err != ErrAlreadyReturned {
		t.Errorf("重复归还应返回ErrAlreadyReturned，实际%v", err)
	}

	// 重复归还不应覆盖首次归还时间
	if !tx.ReturnDate.Equal(first) {
		t.Errorf("归还时间被覆盖: %v", tx.ReturnDate)
	}
}

// TestTransaction_IsOwnedBy 测试归属校验
func TestTransaction_IsOwnedBy(t *testing.T) {
	tx := NewTransaction(42, 2, time.Now())

	if !tx.IsOwnedBy(42) {
		t.Error("借阅人本人应通过归属校验")
	}
	if tx.IsOwnedBy(43) {
		t.Error("他人不应通过归属校验")
	}
}
