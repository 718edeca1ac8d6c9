package mysql

import (
	"context"

	"gorm.io/gorm"
)

// ctxKey context键类型(避免与其他包的键冲突)
type ctxKey int

// txKey 事务DB在context中的键
const txKey ctxKey = 0

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 设计说明:
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
// 3. 通过context.WithValue传递事务DB
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定ISBN组的全部副本行
//	    copies, err := bookRepo.LockCopiesByISBN(ctx, isbn)
//	    if err != nil {
//	        return err
//	    }
//	    // 2. 创建借阅记录
//	    err = txRepo.Create(ctx, loan)
//	    return err // nil则提交,非nil则回滚
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中,Repository的getDB会从context提取
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}
