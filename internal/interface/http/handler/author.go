package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/library/internal/application/author"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// birthDateLayout 作者出生日期的传输格式
const birthDateLayout = "2006-01-02"

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authorUseCase *appauthor.ManageAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorUseCase *appauthor.ManageAuthorUseCase) *AuthorHandler {
	return &AuthorHandler{authorUseCase: authorUseCase}
}

// Create 创建作者（仅管理员）
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	create := appauthor.CreateAuthorRequest{
		Name:        req.Name,
		Email:       req.Email,
		Biography:   req.Biography,
		Nationality: req.Nationality,
		Website:     req.Website,
	}
	if req.BirthDate != "" {
		t, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "birth_date格式错误（应为YYYY-MM-DD）")
			return
		}
		create.BirthDate = &t
	}

	result, err := h.authorUseCase.Create(c.Request.Context(), create)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAuthorResponse(*result))
}

// Get 查询作者详情（含名下图书摘要）
// @Summary      查询作者
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.authorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(*result))
}

// Update 更新作者（仅管理员）
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "更新字段"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [patch]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	update := appauthor.UpdateAuthorRequest{
		Name:        req.Name,
		Email:       req.Email,
		Biography:   req.Biography,
		Nationality: req.Nationality,
		Website:     req.Website,
	}
	if req.BirthDate != nil {
		t, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "birth_date格式错误（应为YYYY-MM-DD）")
			return
		}
		update.BirthDate = &t
	}

	result, err := h.authorUseCase.Update(c.Request.Context(), id, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(*result))
}

// Delete 删除作者（仅管理员）
// @Summary      删除作者
// @Description  名下尚有图书的作者不能删除
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Response "作者名下尚有图书"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.authorUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        name query string false "按姓名模糊查询"
// @Param        nationality query string false "按国籍过滤"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	var req dto.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	authors, total, err := h.authorUseCase.List(c.Request.Context(), appauthor.ListAuthorsRequest{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Name:        req.Name,
		Nationality: req.Nationality,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = toAuthorResponse(a)
	}

	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// toAuthorResponse 应用层DTO → HTTP层DTO
func toAuthorResponse(a appauthor.AuthorInfo) dto.AuthorResponse {
	resp := dto.AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Biography:   a.Biography,
		Nationality: a.Nationality,
		Website:     a.Website,
	}
	if a.BirthDate != nil {
		resp.BirthDate = a.BirthDate.Format(birthDateLayout)
	}
	if len(a.Books) > 0 {
		resp.Books = make([]dto.BookSummaryResponse, len(a.Books))
		for i, b := range a.Books {
			resp.Books[i] = dto.BookSummaryResponse{ID: b.ID, Title: b.Title, ISBN: b.ISBN}
		}
	}
	return resp
}
