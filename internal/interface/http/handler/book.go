package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 馆藏HTTP处理器
type BookHandler struct {
	bookUseCase         *appbook.ManageBookUseCase
	availabilityUseCase *appbook.AvailabilityUseCase
}

// NewBookHandler 创建馆藏处理器
func NewBookHandler(
	bookUseCase *appbook.ManageBookUseCase,
	availabilityUseCase *appbook.AvailabilityUseCase,
) *BookHandler {
	return &BookHandler{
		bookUseCase:         bookUseCase,
		availabilityUseCase: availabilityUseCase,
	}
}

// Create 录入副本（仅管理员）
// @Summary      录入图书副本
// @Description  同一ISBN再次录入表示馆藏多了一本副本
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "副本信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ISBN格式错误"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.bookUseCase.Create(c.Request.Context(), appbook.CreateBookRequest{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookResponse(*result))
}

// Get 查询副本
// @Summary      查询图书副本
// @Tags         图书
// @Produce      json
// @Param        id path int true "副本ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.bookUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(*result))
}

// Update 更新副本（仅管理员）
// @Summary      更新图书副本
// @Description  修改ISBN相当于把副本移入另一个ISBN组
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "副本ID"
// @Param        request body dto.UpdateBookRequest true "更新字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.bookUseCase.Update(c.Request.Context(), id, appbook.UpdateBookRequest{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(*result))
}

// Delete 删除副本（仅管理员）
// @Summary      删除图书副本
// @Description  在借的副本不能删除
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "副本ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Response "副本在借"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.bookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 副本列表
// @Summary      图书副本列表
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        search query string false "按书名/ISBN模糊查询"
// @Param        author_id query int false "按作者过滤"
// @Param        available_only query bool false "仅返回当前可借的副本"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	books, total, err := h.bookUseCase.List(c.Request.Context(), appbook.ListBooksRequest{
		Page:          req.Page,
		PageSize:      req.PageSize,
		Search:        req.Search,
		AuthorID:      req.AuthorID,
		AvailableOnly: req.AvailableOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}

	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// Availability 查询副本所属ISBN组的可借情况
// @Summary      查询可借数量
// @Description  可借数量是实时推导值：副本总数 - 未归还借阅数
// @Tags         图书
// @Produce      json
// @Param        id path int true "副本ID"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/availability [get]
func (h *BookHandler) Availability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.availabilityUseCase.ByBookID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAvailabilityResponse(*result))
}

// AvailabilityByISBN 按ISBN查询可借情况
// @Summary      按ISBN查询可借数量
// @Description  未收录的ISBN返回total_copies=0、available_copies=0
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router       /api/v1/isbn/{isbn}/availability [get]
func (h *BookHandler) AvailabilityByISBN(c *gin.Context) {
	isbn := c.Param("isbn")

	result, err := h.availabilityUseCase.ByISBN(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAvailabilityResponse(*result))
}

// toBookResponse 应用层DTO → HTTP层DTO
func toBookResponse(b appbook.BookInfo) dto.BookResponse {
	return dto.BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		Description:     b.Description,
	}
}

// toAvailabilityResponse 应用层DTO → HTTP层DTO
func toAvailabilityResponse(a appbook.AvailabilityInfo) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{
		ISBN:            a.ISBN,
		TotalCopies:     a.TotalCopies,
		AvailableCopies: a.AvailableCopies,
	}
}
