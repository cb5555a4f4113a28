// Package router 管理路由配置，用于设置HTTP服务的路由规则.
// router 包只负责将路径和处理器绑定到 gin 引擎，处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 在 /api/v1 下挂载全部业务路由.
func RegisterAPIRoutes(g *gin.RouterGroup) {
	RegisterUserRoutes(g)
	RegisterFolderRoutes(g)
	RegisterFileRoutes(g)
	RegisterTagRoutes(g)
	RegisterActivityRoutes(g)
	RegisterStatsRoutes(g)
	RegisterHealthCheckRoute(g)
	RegisterSchedulerRoutes(g)
}
