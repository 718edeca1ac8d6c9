package author

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.ErrAuthorNotFound

	// ErrAuthorHasBooks 作者名下尚有图书，不能删除
	ErrAuthorHasBooks = apperrors.New(apperrors.ErrCodeBusinessError, "该作者名下尚有图书，无法删除")
)
