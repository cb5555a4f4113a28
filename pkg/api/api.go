// Package api 定义对外 HTTP API 的挂载入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/router"
)

// RegisterRoutes 在传入的 gin 引擎上挂载 /api/v1 业务路由与 Swagger 文档.
func RegisterRoutes(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e.Group("/api/v1"))
	router.RegisterSwaggerRoute(e)

	return e
}
