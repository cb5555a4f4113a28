package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// BulkDeleteFiles 批量删除文件.
//
//	@Summary		批量删除文件
//	@Description	不存在的 ID 跳过；返回实际删除数；对象存储清理异步尽力而为
//	@Tags			文件批量
//	@Accept			json
//	@Produce		json
//	@Param			files	body		types.BulkDeleteRequest		true	"批量删除请求"
//	@Success		200		{object}	types.BulkDeleteResponse	"删除结果"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Failure		404		{object}	map[string]string			"全部未命中"
//	@Router			/api/v1/files/bulk/delete [post]
func BulkDeleteFiles(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.BulkDelete(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BulkMoveFiles 批量移动文件到目标文件夹.
//
//	@Summary	批量移动文件
//	@Tags		文件批量
//	@Accept		json
//	@Produce	json
//	@Param		files	body		types.BulkMoveRequest	true	"批量移动请求"
//	@Success	200		{object}	types.BulkMoveResponse	"移动结果"
//	@Failure	400		{object}	map[string]string		"请求参数错误"
//	@Failure	404		{object}	map[string]string		"目标文件夹不存在或零行变更"
//	@Router		/api/v1/files/bulk/move [post]
func BulkMoveFiles(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.BulkMoveRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.BulkMove(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddFileTags 为文件添加标签（并集语义）.
//
//	@Summary	添加文件标签
//	@Tags		文件批量
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"文件 ID"
//	@Param		tags	body		types.FileTagsRequest	true	"标签名列表"
//	@Success	200		{object}	types.FileResponse		"文件详情"
//	@Failure	404		{object}	map[string]string		"文件不存在"
//	@Router		/api/v1/files/{id}/tags [post]
func AddFileTags(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.FileTagsRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.AddTags(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveFileTags 移除文件上的标签.
//
//	@Summary	移除文件标签
//	@Tags		文件批量
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"文件 ID"
//	@Param		tags	body		types.FileTagsRequest	true	"标签名列表"
//	@Success	200		{object}	types.FileResponse		"文件详情"
//	@Failure	404		{object}	map[string]string		"文件不存在"
//	@Router		/api/v1/files/{id}/tags [delete]
func RemoveFileTags(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.FileTagsRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.RemoveTags(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
