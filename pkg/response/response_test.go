package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestHTTPStatus 业务错误码到HTTP状态码的映射
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"重复归还映射409", apperrors.ErrCodeAlreadyReturned, http.StatusConflict},
		{"无权限映射403", apperrors.ErrCodeForbidden, http.StatusForbidden},
		{"账号停用映射403", apperrors.ErrCodeUserInactive, http.StatusForbidden},
		{"未登录映射401", apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"密码错误映射401", apperrors.ErrCodeInvalidPassword, http.StatusUnauthorized},
		{"资源不存在映射404", apperrors.ErrCodeBookNotFound, http.StatusNotFound},
		{"借阅记录不存在映射404", apperrors.ErrCodeTransactionNotFound, http.StatusNotFound},
		{"无可借副本映射400", apperrors.ErrCodeNoAvailableCopies, http.StatusBadRequest},
		{"参数错误映射400", apperrors.ErrCodeInvalidParams, http.StatusBadRequest},
		{"内部错误映射500", apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

// TestSuccess 成功响应的结构
func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"id": 1})

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

// TestCreated 创建响应返回201
func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, gin.H{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
}

// TestNoContent 删除响应返回204且无响应体
func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NoContent(c)
	// gin缓冲状态码直到写入响应体或手动刷新，测试环境需显式刷新
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

// TestError AppError携带的业务错误码原样返回
func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperrors.ErrAlreadyReturned)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrCodeAlreadyReturned, resp.Code)
	assert.Equal(t, "该借阅记录已归还", resp.Message)
	assert.Nil(t, resp.Data)
}

// TestError 未包装的系统错误兜底为500，且不泄露内部细节
func TestError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("dial tcp 127.0.0.1:3306: connect refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
	assert.NotContains(t, resp.Message, "127.0.0.1")
}

// TestNewPageData 分页计算
func TestNewPageData(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page, pageSize int
		wantPages      int
	}{
		{"整除", 40, 1, 20, 2},
		{"有余数多一页", 41, 1, 20, 3},
		{"空列表", 0, 1, 20, 0},
		{"未传分页参数按默认值处理", 10, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := NewPageData(nil, tt.total, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPages, pd.TotalPages)
			assert.GreaterOrEqual(t, pd.Page, 1)
			assert.GreaterOrEqual(t, pd.PageSize, 1)
		})
	}
}
