package author

import (
	"time"
)

// Author 作者实体
// 作者是图书的归属对象：每本图书副本必须关联一位作者，
// 删除作者前需确认名下没有图书（由Repository的外键约束保证）
type Author struct {
	ID          uint
	Name        string
	Email       string     // 联系邮箱（可为空）
	Biography   string     // 简介（可为空）
	BirthDate   *time.Time // 出生日期（可为空）
	Nationality string     // 国籍（可为空）
	Website     string     // 个人网站（可为空）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAuthor 创建作者（工厂方法）
// 只有姓名是必填的，其余档案字段创建后可以补充
func NewAuthor(name, biography string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		Biography: biography,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
