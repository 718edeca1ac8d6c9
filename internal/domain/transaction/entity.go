package transaction

import (
	"time"
)

// Transaction 借阅记录实体(聚合根)
// 设计说明:
// 1. 借阅记录是一条只追加的台账:借书时插入,还书时只把状态从"未归还"翻转到"已归还"
// 2. 可借数量等推导值都建立在这张台账之上,记录本身不存任何汇总字段
// 3. 不直接关联User/Book对象,只保存ID(避免跨聚合引用)
type Transaction struct {
	ID         uint
	UserID     uint       // 借阅人用户ID
	BookID     uint       // 借出的副本ID
	BorrowDate time.Time  // 借出时间
	ReturnDate *time.Time // 归还时间(未归还为nil)
	IsReturned bool       // 是否已归还
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction 创建借阅记录(工厂方法)
// 新记录一律处于"未归还"状态
func NewTransaction(userID, bookID uint, borrowDate time.Time) *Transaction {
	now := time.Now()
	return &Transaction{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		IsReturned: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOpen 是否仍在借(未归还)
func (t *Transaction) IsOpen() bool {
	return !t.IsReturned
}

// Close 归还(领域行为)
// 状态机只有一条合法转换:未归还→已归还,重复归还返回ErrAlreadyReturned
func (t *Transaction) Close(returnDate time.Time) error {
	if t.IsReturned {
		return ErrAlreadyReturned
	}
	t.IsReturned = true
	t.ReturnDate = &returnDate
	t.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查借阅记录是否属于指定用户
// 普通读者只能查看和归还自己的借阅
func (t *Transaction) IsOwnedBy(userID uint) bool {
	return t.UserID == userID
}
