package transaction

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrTransactionNotFound 借阅记录不存在
	ErrTransactionNotFound = apperrors.ErrTransactionNotFound

	// ErrAlreadyReturned 记录已归还,不能重复归还
	ErrAlreadyReturned = apperrors.ErrAlreadyReturned

	// ErrNoAvailableCopies 该ISBN组没有可借副本
	ErrNoAvailableCopies = apperrors.ErrNoAvailableCopies
)
