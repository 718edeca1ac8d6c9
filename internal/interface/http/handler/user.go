package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
type UserHandler struct {
	registerUseCase    *appuser.RegisterUseCase
	createAdminUseCase *appuser.CreateAdminUseCase
	loginUseCase       *appuser.LoginUseCase
	logoutUseCase      *appuser.LogoutUseCase
	getUserUseCase     *appuser.GetUserUseCase
	updateUserUseCase  *appuser.UpdateUserUseCase
	listUsersUseCase   *appuser.ListUsersUseCase
	deleteUserUseCase  *appuser.DeleteUserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	createAdminUseCase *appuser.CreateAdminUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	getUserUseCase *appuser.GetUserUseCase,
	updateUserUseCase *appuser.UpdateUserUseCase,
	listUsersUseCase *appuser.ListUsersUseCase,
	deleteUserUseCase *appuser.DeleteUserUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:    registerUseCase,
		createAdminUseCase: createAdminUseCase,
		loginUseCase:       loginUseCase,
		logoutUseCase:      logoutUseCase,
		getUserUseCase:     getUserUseCase,
		updateUserUseCase:  updateUserUseCase,
		listUsersUseCase:   listUsersUseCase,
		deleteUserUseCase:  deleteUserUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建新读者账号（角色固定为regular）
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误或用户名已存在"
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.UserResponse{
		ID:       result.UserID,
		Username: result.Username,
		Email:    result.Email,
		Role:     result.Role,
		IsActive: true,
	})
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证用户名密码，返回JWT Token对
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Failure      403 {object} response.Response "账号已停用"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		User:         toUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetMe 查询当前用户
// @Summary      查询当前登录用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)

	result, err := h.getUserUseCase.Execute(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toUserResponse(*result)
	response.Success(c, &resp)
}

// Get 查询指定用户
// @Summary      查询用户
// @Description  普通读者只能查自己，管理员可以查任何人
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getUserUseCase.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toUserResponse(*result)
	response.Success(c, &resp)
}

// Update 更新用户
// @Summary      更新用户资料
// @Description  稀疏更新；普通读者只能改自己且role/is_active字段被静默丢弃
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "更新字段"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUserUseCase.Execute(c.Request.Context(), actorFrom(c), id, appuser.UpdateUserRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toUserResponse(*result)
	response.Success(c, &resp)
}

// List 用户列表（仅管理员）
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        role query string false "按角色过滤"
// @Param        is_active query bool false "按启用状态过滤"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	users, total, err := h.listUsersUseCase.Execute(c.Request.Context(), appuser.ListUsersRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.UserResponse, len(users))
	for i, u := range users {
		list[i] = toUserResponse(u)
	}

	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// Create 管理员创建用户（可指定角色）
// @Summary      创建用户
// @Description  仅管理员，可创建admin或regular账号
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createAdminUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}, user.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.UserResponse{
		ID:       result.UserID,
		Username: result.Username,
		Email:    result.Email,
		Role:     result.Role,
		IsActive: true,
	})
}

// Delete 删除用户（仅管理员）
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUserUseCase.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// =========================================
// 辅助函数
// =========================================

// actorFrom 从Context构造操作发起人
func actorFrom(c *gin.Context) appuser.Actor {
	return appuser.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
}

// parseIDParam 解析路径参数:id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// toUserResponse 应用层DTO → HTTP层DTO
func toUserResponse(u appuser.UserInfo) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
