package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
)

// RegisterActivityRoutes 注册审计日志相关路由.
func RegisterActivityRoutes(g *gin.RouterGroup) {
	activityRoutes := g.Group("/activities")
	{
		activityRoutes.POST("", handle.LogActivity)
		activityRoutes.GET("", handle.ListActivities)
		activityRoutes.GET("/me", handle.ListUserActivities)
		activityRoutes.GET("/recent", handle.ListRecentActivities)
		activityRoutes.GET("/file/:id", handle.ListFileActivities)
		activityRoutes.GET("/folder/:id", handle.ListFolderActivities)
	}
}
