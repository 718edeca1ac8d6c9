package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书副本不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrInvalidISBN ISBN格式错误
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式错误（应为10位或13位）")

	// ErrBookBorrowed 副本尚有未归还的借阅
	ErrBookBorrowed = apperrors.ErrBookBorrowed
)
