// Package router 管理路由配置，用于设置HTTP服务的路由.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
	"github.com/yeisme/cloudvault/pkg/middleware"
)

// RegisterSchedulerRoutes 注册调度器管理路由，仅限 admin 角色访问.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	sg := g.Group("/scheduler", middleware.RequireMinRole(middleware.RoleAdmin))

	sg.GET("/jobs", handle.SchedulerJobs)

	sg.POST("/jobs/stop", handle.SchedulerStopJobs)

	sg.DELETE("/jobs/:id", handle.SchedulerRemoveJob)

	sg.GET("/queue/waiting", handle.SchedulerQueueWaiting)
}
