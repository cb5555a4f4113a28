// Package handle 提供请求处理器的实现，用于处理HTTP请求.
package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/types"
	"github.com/yeisme/cloudvault/pkg/log"
	"github.com/yeisme/cloudvault/pkg/middleware"
)

// DefaultHandler 未实现路由的占位处理器.
func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// checkUser 提取当前请求用户：认证中间件注入的身份优先 -> query 参数 ->
// 非 Release 模式下的默认测试用户.
func checkUser(c *gin.Context) (string, error) {
	user := middleware.CurrentUserID(c)
	if user == "" {
		user = c.Query("user")
	}

	// 测试默认值，不为 Debug 或者 Test 模式时
	if user == "" && gin.Mode() != gin.ReleaseMode {
		user = "test-user"
	}

	user = strings.TrimSpace(user)
	if user == "" {
		return "", errors.New("missing user identity")
	}

	return user, nil
}

// respondError 统一错误输出：types.Error 携带类别与状态码，
// 其它错误按 500 处理且不外泄内部细节.
func respondError(c *gin.Context, err error) {
	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"kind": apiErr.Kind, "error": apiErr.Message})
		return
	}

	log.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// bindJSON 解析并校验 JSON 请求体，失败时输出 400 并返回 false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Logger().Warn().Err(err).Str("path", c.FullPath()).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return false
	}

	return true
}
