package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&BookModel{},
		&TransactionModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	FullName  string    `gorm:"size:100;comment:姓名"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string    `gorm:"size:20;not null;default:regular;comment:角色(admin/regular)"`
	IsActive  bool      `gorm:"not null;default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"index;size:100;not null;comment:姓名"`
	Email       string     `gorm:"size:100;comment:联系邮箱"`
	Biography   string     `gorm:"type:text;comment:简介"`
	BirthDate   *time.Time `gorm:"comment:出生日期"`
	Nationality string     `gorm:"index;size:50;comment:国籍"`
	Website     string     `gorm:"size:255;comment:个人网站"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书副本模型
// 设计说明:
// 1. 一行一本物理副本,ISBN只有普通索引(同一ISBN允许多行)
// 2. 馆藏不存"可借数量"字段,可借数量永远从借阅台账推导
// 3. AuthorID有外键约束,作者名下有图书时禁止删除作者
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	ISBN            string    `gorm:"index;size:20;not null;comment:ISBN号(同一书目的副本共享)"`
	PublicationYear int       `gorm:"comment:出版年份"`
	AuthorID        uint      `gorm:"index;not null;comment:作者ID"`
	Description     string    `gorm:"type:text;comment:内容简介"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// TransactionModel GORM借阅记录模型
// 设计说明:
// 1. OpenFlag是并发兜底:在借为1,已归还为NULL
//    (book_id, open_flag)唯一索引保证一本副本最多一条在借记录,
//    NULL值互不冲突,所以历史记录不受影响
// 2. 即使业务层的行锁失效(比如漏开事务),数据库也会在插入第二条
//    在借记录时报唯一键冲突,仓储把它转换为"无可借副本"
type TransactionModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index;not null;comment:借阅人用户ID"`
	BookID     uint       `gorm:"uniqueIndex:idx_book_open;not null;comment:副本ID"`
	BorrowDate time.Time  `gorm:"index;not null;comment:借出时间"`
	ReturnDate *time.Time `gorm:"comment:归还时间"`
	IsReturned bool       `gorm:"index;not null;default:false;comment:是否已归还"`
	OpenFlag   *int8      `gorm:"uniqueIndex:idx_book_open;type:tinyint;comment:在借标志(在借=1,已归还=NULL)"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "transactions"
}
