package dto

// CreateBookRequest HTTP录入副本请求
// 同一ISBN再次录入表示馆藏多了一本副本,不是错误
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	ISBN            string `json:"isbn" binding:"required" example:"9787115428028"`
	PublicationYear int    `json:"publication_year" binding:"omitempty,min=1000,max=2100" example:"2017"`
	AuthorID        uint   `json:"author_id" binding:"required" example:"1"`
	Description     string `json:"description" binding:"omitempty,max=5000" example:"Go语言入门经典"`
}

// UpdateBookRequest HTTP更新副本请求（稀疏更新）
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=200" example:"Go语言实战（第2版）"`
	ISBN            *string `json:"isbn" example:"9787115428028"`
	PublicationYear *int    `json:"publication_year" binding:"omitempty,min=1000,max=2100" example:"2021"`
	AuthorID        *uint   `json:"author_id" example:"1"`
	Description     *string `json:"description" binding:"omitempty,max=5000" example:"Go语言入门经典"`
}

// BookResponse HTTP副本响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"Go语言实战"`
	ISBN            string `json:"isbn" example:"9787115428028"`
	PublicationYear int    `json:"publication_year,omitempty" example:"2017"`
	AuthorID        uint   `json:"author_id" example:"1"`
	Description     string `json:"description,omitempty" example:"Go语言入门经典"`
}

// ListBooksRequest HTTP副本列表请求
type ListBooksRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Search        string `form:"search" binding:"omitempty,max=200" example:"Go"`
	AuthorID      uint   `form:"author_id" example:"1"`
	AvailableOnly bool   `form:"available_only" example:"true"`
}

// AvailabilityResponse HTTP可借情况响应
// 数值是查询时实时推导的,未收录的ISBN返回两个0
type AvailabilityResponse struct {
	ISBN            string `json:"isbn" example:"9787115428028"`
	TotalCopies     int    `json:"total_copies" example:"3"`
	AvailableCopies int    `json:"available_copies" example:"1"`
}
