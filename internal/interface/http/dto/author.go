package dto

// CreateAuthorRequest HTTP创建作者请求
// birth_date使用"2006-01-02"日期格式
type CreateAuthorRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"刘慈欣"`
	Email       string `json:"email" binding:"omitempty,email" example:"liucixin@example.com"`
	Biography   string `json:"biography" binding:"omitempty,max=5000" example:"科幻作家,雨果奖得主"`
	BirthDate   string `json:"birth_date" binding:"omitempty" example:"1963-06-23"`
	Nationality string `json:"nationality" binding:"omitempty,max=50" example:"中国"`
	Website     string `json:"website" binding:"omitempty,url" example:"https://example.com"`
}

// UpdateAuthorRequest HTTP更新作者请求（稀疏更新）
type UpdateAuthorRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100" example:"刘慈欣"`
	Email       *string `json:"email" binding:"omitempty,email" example:"liucixin@example.com"`
	Biography   *string `json:"biography" binding:"omitempty,max=5000" example:"科幻作家,雨果奖得主"`
	BirthDate   *string `json:"birth_date" binding:"omitempty" example:"1963-06-23"`
	Nationality *string `json:"nationality" binding:"omitempty,max=50" example:"中国"`
	Website     *string `json:"website" binding:"omitempty,url" example:"https://example.com"`
}

// BookSummaryResponse 作者详情里内嵌的图书摘要
type BookSummaryResponse struct {
	ID    uint   `json:"id" example:"1"`
	Title string `json:"title" example:"三体"`
	ISBN  string `json:"isbn" example:"9787536692930"`
}

// AuthorResponse HTTP作者响应
// Books仅详情接口返回
type AuthorResponse struct {
	ID          uint                  `json:"id" example:"1"`
	Name        string                `json:"name" example:"刘慈欣"`
	Email       string                `json:"email,omitempty" example:"liucixin@example.com"`
	Biography   string                `json:"biography,omitempty" example:"科幻作家,雨果奖得主"`
	BirthDate   string                `json:"birth_date,omitempty" example:"1963-06-23"`
	Nationality string                `json:"nationality,omitempty" example:"中国"`
	Website     string                `json:"website,omitempty" example:"https://example.com"`
	Books       []BookSummaryResponse `json:"books,omitempty"`
}

// ListAuthorsRequest HTTP作者列表请求
type ListAuthorsRequest struct {
	Page        int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Name        string `form:"name" binding:"omitempty,max=100" example:"刘"`
	Nationality string `form:"nationality" binding:"omitempty,max=50" example:"中国"`
}
