package user

import (
	"time"
)

// Role 用户角色
// 设计说明：角色只有两种，admin管理馆藏与所有借阅记录，
// regular只能管理自己的资料和借阅
type Role string

const (
	RoleAdmin   Role = "admin"   // 管理员
	RoleRegular Role = "regular" // 普通读者
)

// IsValid 校验角色值
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleRegular
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID             uint
	Username       string
	Email          string
	FullName       string
	HashedPassword string // bcrypt哈希值
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, fullName, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Username:       username,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Deactivate 停用账号（领域行为）
// 停用后无法登录，历史借阅记录保留
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

// Activate 启用账号
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}
