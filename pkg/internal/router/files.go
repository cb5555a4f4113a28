package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
)

// RegisterFileRoutes 注册文件目录相关路由.
func RegisterFileRoutes(g *gin.RouterGroup) {
	fileRoutes := g.Group("/files")
	{
		// 上传与全量列表
		fileRoutes.POST("", handle.UploadFile)
		fileRoutes.GET("", handle.ListFiles)

		// 搜索与过滤，放在 :id 路由之前
		fileRoutes.GET("/search", handle.SearchFilesByName)
		fileRoutes.GET("/search/tag", handle.SearchFilesByTag)
		fileRoutes.GET("/type/:type", handle.FilterFilesByType)
		fileRoutes.GET("/size", handle.FilterFilesBySize)

		// 批量操作
		bulkGroup := fileRoutes.Group("/bulk")
		{
			bulkGroup.POST("/delete", handle.BulkDeleteFiles)
			bulkGroup.POST("/move", handle.BulkMoveFiles)
		}

		// 单个文件操作
		singleGroup := fileRoutes.Group("/:id")
		{
			singleGroup.GET("", handle.GetFile)
			singleGroup.PUT("", handle.UpdateFile)
			singleGroup.DELETE("", handle.DeleteFile)
			singleGroup.GET("/download", handle.DownloadFile)
			singleGroup.POST("/tags", handle.AddFileTags)
			singleGroup.DELETE("/tags", handle.RemoveFileTags)
		}
	}
}
