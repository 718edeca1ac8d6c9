package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apptx "github.com/xiebiao/library/internal/application/transaction"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// TransactionHandler 借阅HTTP处理器
type TransactionHandler struct {
	borrowUseCase  *apptx.BorrowBookUseCase
	returnUseCase  *apptx.ReturnBookUseCase
	queryUseCase   *apptx.QueryTransactionsUseCase
	correctUseCase *apptx.CorrectTransactionUseCase
}

// NewTransactionHandler 创建借阅处理器
func NewTransactionHandler(
	borrowUseCase *apptx.BorrowBookUseCase,
	returnUseCase *apptx.ReturnBookUseCase,
	queryUseCase *apptx.QueryTransactionsUseCase,
	correctUseCase *apptx.CorrectTransactionUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		borrowUseCase:  borrowUseCase,
		returnUseCase:  returnUseCase,
		queryUseCase:   queryUseCase,
		correctUseCase: correctUseCase,
	}
}

// Borrow 借书
// @Summary      借书
// @Description  借阅指定副本；整个ISBN组无可借余量或该副本在借时拒绝
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BorrowBookRequest true "借书请求"
// @Success      201 {object} response.Response{data=dto.TransactionResponse} "借出成功"
// @Failure      400 {object} response.Response "无可借副本"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/transactions/borrow [post]
func (h *TransactionHandler) Borrow(c *gin.Context) {
	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.borrowUseCase.Execute(c.Request.Context(), apptx.BorrowBookRequest{
		UserID: middleware.MustGetUserID(c),
		BookID: req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(*result))
}

// Return 还书
// @Summary      还书
// @Description  普通读者只能归还自己的借阅，重复归还返回409
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.TransactionResponse} "归还成功"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Failure      409 {object} response.Response "记录已归还"
// @Router       /api/v1/transactions/{id}/return [post]
func (h *TransactionHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), apptx.ReturnBookRequest{
		Actor:         txActorFrom(c),
		TransactionID: id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toTransactionResponse(*result))
}

// Get 查询单条借阅记录
// @Summary      查询借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.queryUseCase.Get(c.Request.Context(), txActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toTransactionResponse(*result))
}

// List 借阅记录列表
// @Summary      借阅记录列表
// @Description  普通读者只能看自己的记录，管理员看全量台账
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        user_id query int false "按借阅人过滤（仅管理员）"
// @Param        book_id query int false "按副本过滤"
// @Param        is_open query bool false "true表示仅未归还"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	txs, total, err := h.queryUseCase.List(c.Request.Context(), txActorFrom(c), apptx.ListTransactionsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		UserID:   req.UserID,
		BookID:   req.BookID,
		IsOpen:   req.IsOpen,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.TransactionResponse, len(txs))
	for i, t := range txs {
		list[i] = toTransactionResponse(t)
	}

	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// Correct 修正借阅记录（仅管理员）
// @Summary      修正借阅记录
// @Description  处理录入错误的后门；日期使用RFC3339格式
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Param        request body dto.CorrectTransactionRequest true "修正字段"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/transactions/{id} [patch]
func (h *TransactionHandler) Correct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CorrectTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	correction := apptx.CorrectTransactionRequest{
		UserID:     req.UserID,
		BookID:     req.BookID,
		IsReturned: req.IsReturned,
	}
	if req.BorrowDate != nil {
		t, err := time.Parse(time.RFC3339, *req.BorrowDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "borrow_date格式错误（应为RFC3339）")
			return
		}
		correction.BorrowDate = &t
	}
	if req.ReturnDate != nil {
		if *req.ReturnDate == "" {
			// 空字符串:清除归还时间,改回在借
			var zero time.Time
			correction.ReturnDate = &zero
		} else {
			t, err := time.Parse(time.RFC3339, *req.ReturnDate)
			if err != nil {
				response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "return_date格式错误（应为RFC3339）")
				return
			}
			correction.ReturnDate = &t
		}
	}

	result, err := h.correctUseCase.Update(c.Request.Context(), id, correction)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toTransactionResponse(*result))
}

// Delete 删除借阅记录（仅管理员）
// @Summary      删除借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.correctUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// txActorFrom 从Context构造借阅操作发起人
func txActorFrom(c *gin.Context) apptx.Actor {
	return apptx.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
}

// toTransactionResponse 应用层DTO → HTTP层DTO
func toTransactionResponse(t apptx.TransactionInfo) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		BookID:     t.BookID,
		BorrowDate: t.BorrowDate,
		ReturnDate: t.ReturnDate,
		IsReturned: t.IsReturned,
	}
}
