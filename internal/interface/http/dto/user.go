package dto

// RegisterRequest HTTP注册请求
// 公开注册不接受role字段,新用户一律是regular角色
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"zhangsan"`
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"pass1234"`
	FullName string `json:"full_name" binding:"max=100" example:"张三"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"zhangsan"`
	Password string `json:"password" binding:"required" example:"pass1234"`
}

// UserResponse HTTP用户响应
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"zhangsan"`
	Email    string `json:"email" example:"zhangsan@example.com"`
	FullName string `json:"full_name" example:"张三"`
	Role     string `json:"role" example:"regular"`
	IsActive bool   `json:"is_active" example:"true"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in" example:"7200"` // Access Token有效期（秒）
}

// UpdateUserRequest HTTP更新用户请求（稀疏更新）
// 指针字段:区分"没传"和"传了零值"
// role/is_active只有管理员生效,普通读者请求里带了会被静默丢弃
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email" example:"new@example.com"`
	FullName *string `json:"full_name" binding:"omitempty,max=100" example:"张三丰"`
	Password *string `json:"password" binding:"omitempty,min=8,max=20" example:"newpass5678"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin regular" example:"regular"`
	IsActive *bool   `json:"is_active" example:"true"`
}

// CreateUserRequest HTTP管理员建号请求（可指定角色）
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin2"`
	Email    string `json:"email" binding:"required,email" example:"admin2@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"pass1234"`
	FullName string `json:"full_name" binding:"max=100" example:"管理员二号"`
	Role     string `json:"role" binding:"required,oneof=admin regular" example:"admin"`
}

// ListUsersRequest HTTP用户列表请求
type ListUsersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Role     string `form:"role" binding:"omitempty,oneof=admin regular" example:"regular"`
	IsActive *bool  `form:"is_active"`
}
