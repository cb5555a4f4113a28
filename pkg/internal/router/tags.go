package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
)

// RegisterTagRoutes 注册标签相关路由.
func RegisterTagRoutes(g *gin.RouterGroup) {
	tagRoutes := g.Group("/tags")
	{
		tagRoutes.POST("", handle.CreateTag)
		tagRoutes.GET("", handle.ListTags)
		tagRoutes.GET("/:id", handle.GetTag)
		tagRoutes.PUT("/:id", handle.UpdateTag)
		tagRoutes.DELETE("/:id", handle.DeleteTag)
	}
}
