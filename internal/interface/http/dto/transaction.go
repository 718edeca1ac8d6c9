package dto

// BorrowBookRequest HTTP借书请求
// 借阅人从JWT提取,请求体只带副本ID
type BorrowBookRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// TransactionResponse HTTP借阅记录响应
type TransactionResponse struct {
	ID         uint   `json:"id" example:"1"`
	UserID     uint   `json:"user_id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	BorrowDate string `json:"borrow_date" example:"2024-11-06T10:30:00Z"`
	ReturnDate string `json:"return_date,omitempty" example:"2024-11-13T10:30:00Z"`
	IsReturned bool   `json:"is_returned" example:"false"`
}

// ListTransactionsRequest HTTP借阅列表请求
// user_id只有管理员可以指定他人,is_open=true表示仅未归还
type ListTransactionsRequest struct {
	Page     int   `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	UserID   uint  `form:"user_id" example:"1"`
	BookID   uint  `form:"book_id" example:"1"`
	IsOpen   *bool `form:"is_open"`
}

// CorrectTransactionRequest HTTP台账修正请求（仅管理员，稀疏更新）
// 日期使用RFC3339格式,return_date传空字符串表示清除归还时间（改回在借）
type CorrectTransactionRequest struct {
	UserID     *uint   `json:"user_id" example:"2"`
	BookID     *uint   `json:"book_id" example:"3"`
	BorrowDate *string `json:"borrow_date" example:"2024-11-06T10:30:00Z"`
	ReturnDate *string `json:"return_date" example:"2024-11-13T10:30:00Z"`
	IsReturned *bool   `json:"is_returned" example:"true"`
}
