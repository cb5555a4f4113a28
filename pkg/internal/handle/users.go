package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// RegisterUser 注册新账户.
//
//	@Summary	注册
//	@Tags		账户
//	@Accept		json
//	@Produce	json
//	@Param		user	body		types.RegisterRequest	true	"注册请求"
//	@Success	201		{object}	types.UserResponse		"用户信息"
//	@Failure	409		{object}	map[string]string		"用户名或邮箱已注册"
//	@Router		/api/v1/users/register [post]
func RegisterUser(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// LoginUser 登录并签发访问令牌.
//
//	@Summary	登录
//	@Tags		账户
//	@Accept		json
//	@Produce	json
//	@Param		login	body		types.LoginRequest	true	"登录请求"
//	@Success	200		{object}	types.LoginResponse	"访问令牌"
//	@Failure	400		{object}	map[string]string	"邮箱或密码错误"
//	@Router		/api/v1/users/login [post]
func LoginUser(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCurrentUser 获取当前登录用户信息.
//
//	@Summary	当前用户
//	@Tags		账户
//	@Produce	json
//	@Success	200	{object}	types.UserResponse	"用户信息"
//	@Failure	404	{object}	map[string]string	"用户不存在"
//	@Router		/api/v1/users/me [get]
func GetCurrentUser(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangePassword 修改当前用户密码.
//
//	@Summary	修改密码
//	@Tags		账户
//	@Accept		json
//	@Produce	json
//	@Param		password	body		types.ChangePasswordRequest	true	"修改密码请求"
//	@Success	200			{object}	map[string]string			"修改成功"
//	@Failure	400			{object}	map[string]string			"旧密码错误"
//	@Router		/api/v1/users/me/password [put]
func ChangePassword(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewUserService(c.Request.Context())

	if err := svc.ChangePassword(c.Request.Context(), user, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// UpdateEmail 修改当前用户邮箱.
//
//	@Summary	修改邮箱
//	@Tags		账户
//	@Accept		json
//	@Produce	json
//	@Param		email	body		types.UpdateEmailRequest	true	"修改邮箱请求"
//	@Success	200		{object}	types.UserResponse			"用户信息"
//	@Failure	409		{object}	map[string]string			"邮箱已注册"
//	@Router		/api/v1/users/me/email [put]
func UpdateEmail(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.UpdateEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.UpdateEmail(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateFullName 修改当前用户姓名.
//
//	@Summary	修改姓名
//	@Tags		账户
//	@Accept		json
//	@Produce	json
//	@Param		name	body		types.UpdateFullNameRequest	true	"修改姓名请求"
//	@Success	200		{object}	types.UserResponse			"用户信息"
//	@Router		/api/v1/users/me/name [put]
func UpdateFullName(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.UpdateFullNameRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.UpdateFullName(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
