package book

import (
	"regexp"
	"time"
)

// Book 图书副本实体(聚合根)
// DDD设计说明:
// 1. 一行记录代表馆藏中的一本物理副本,同一ISBN的多条记录构成一个"副本组"
// 2. ISBN是副本组的业务标识,可借数量按ISBN组动态推导,绝不落库存字段
// 3. AuthorID关联作者表,每本副本必须有作者
type Book struct {
	ID              uint
	Title           string // 书名
	ISBN            string // ISBN号(同一书目的所有副本共享)
	PublicationYear int    // 出版年份(可为0表示未知)
	AuthorID        uint   // 作者ID(关联Author表)
	Description     string // 内容简介(可为空)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新副本(工厂方法)
// isbn需调用方先验证格式
func NewBook(title, isbn string, publicationYear int, authorID uint, description string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		ISBN:            isbn,
		PublicationYear: publicationYear,
		AuthorID:        authorID,
		Description:     description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateInfo 更新副本信息(领域行为)
// 空值字段保持不变,isbn为空时不修改(不允许把副本移出所有ISBN组)
func (b *Book) UpdateInfo(title, isbn string, publicationYear int, authorID uint) {
	if title != "" {
		b.Title = title
	}
	if isbn != "" {
		b.ISBN = isbn
	}
	if publicationYear != 0 {
		b.PublicationYear = publicationYear
	}
	if authorID != 0 {
		b.AuthorID = authorID
	}
	b.UpdatedAt = time.Now()
}

// Availability ISBN副本组的可借情况
// 永远是查询时实时推导的值,不会持久化
type Availability struct {
	TotalCopies     int // 该ISBN的副本总数
	AvailableCopies int // 当前可借副本数(总数减去未归还借阅数)
}

// isbnPattern 去除分隔符后校验位数
var isbnPattern = regexp.MustCompile(`[^0-9Xx]`)

// IsValidISBN 校验ISBN格式
// 支持ISBN-10(末位可为X)和ISBN-13
// 简化实现:只检查位数(生产环境应校验校验位)
func IsValidISBN(isbn string) bool {
	clean := isbnPattern.ReplaceAllString(isbn, "")
	length := len(clean)
	return length == 10 || length == 13
}
