package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
)

// RegisterFolderRoutes 注册文件夹树相关路由.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folderRoutes := g.Group("/folders")
	{
		folderRoutes.POST("", handle.CreateFolder)
		folderRoutes.GET("", handle.ListRootFolders)
		// 树查询放在 :id 路由之前，避免被参数路由吞掉
		folderRoutes.GET("/tree", handle.GetFolderTree)

		singleGroup := folderRoutes.Group("/:id")
		{
			singleGroup.GET("", handle.GetFolder)
			singleGroup.PUT("", handle.RenameFolder)
			singleGroup.DELETE("", handle.DeleteFolder)
			singleGroup.GET("/children", handle.ListFolderChildren)
			singleGroup.GET("/path", handle.GetFolderPath)
			singleGroup.PUT("/move", handle.MoveFolder)
			// 文件夹内文件列表
			singleGroup.GET("/files", handle.ListFilesByFolder)
		}
	}
}
