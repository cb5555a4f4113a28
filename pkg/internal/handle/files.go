package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	"github.com/yeisme/cloudvault/pkg/log"
)

// UploadFile 上传文件（multipart 表单）.
//
//	@Summary		上传文件
//	@Description	表单字段 name/type/folder/tags + 文件字段 file；字节先写对象存储，元数据后落库
//	@Tags			文件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name	formData	string					true	"文件名"
//	@Param			type	formData	string					true	"文件类型 image|video|document"
//	@Param			folder	formData	string					false	"所属文件夹 ID"
//	@Param			tags	formData	[]string				false	"标签名列表"
//	@Param			file	formData	file					true	"文件内容"
//	@Success		201		{object}	types.UploadFileResponse	"上传结果（不含对象句柄）"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		404		{object}	map[string]string		"文件夹不存在"
//	@Failure		409		{object}	map[string]string		"同文件夹重名"
//	@Failure		502		{object}	map[string]string		"对象存储写入失败"
//	@Router			/api/v1/files [post]
func UploadFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.UploadFileRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid upload request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.Upload(c.Request.Context(), user, &req, src, fileHeader.Size, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetFile 获取文件详情.
//
//	@Summary	获取文件详情
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string				true	"文件 ID"
//	@Success	200	{object}	types.FileResponse	"文件详情"
//	@Failure	404	{object}	map[string]string	"文件不存在"
//	@Router		/api/v1/files/{id} [get]
func GetFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateFile 更新文件（重命名 + 标签全量替换）.
//
//	@Summary	更新文件
//	@Tags		文件
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"文件 ID"
//	@Param		file	body		types.UpdateFileRequest	true	"更新请求"
//	@Success	200		{object}	types.FileResponse		"文件详情"
//	@Failure	404		{object}	map[string]string		"文件不存在"
//	@Failure	409		{object}	map[string]string		"同文件夹重名"
//	@Router		/api/v1/files/{id} [put]
func UpdateFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.UpdateFileRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFile 删除文件.
//
//	@Summary	删除文件
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string				true	"文件 ID"
//	@Success	200	{object}	map[string]string	"删除成功"
//	@Failure	404	{object}	map[string]string	"文件不存在"
//	@Router		/api/v1/files/{id} [delete]
func DeleteFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// DownloadFile 签发预签名下载 URL.
//
//	@Summary	下载文件
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string						true	"文件 ID"
//	@Success	200	{object}	types.DownloadFileResponse	"预签名 URL"
//	@Failure	404	{object}	map[string]string			"文件不存在"
//	@Router		/api/v1/files/{id}/download [get]
func DownloadFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.Download(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFiles 列出当前用户的全部文件.
//
//	@Summary	列出全部文件
//	@Tags		文件
//	@Produce	json
//	@Success	200	{array}	types.FileResponse
//	@Router		/api/v1/files [get]
func ListFiles(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.ListByOwner(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFilesByFolder 列出文件夹内的文件（空结果为 404）.
//
//	@Summary	列出文件夹内文件
//	@Tags		文件
//	@Produce	json
//	@Param		id	path	string	true	"文件夹 ID"
//	@Success	200	{array}	types.FileResponse
//	@Failure	404	{object}	map[string]string	"文件夹不存在或无文件"
//	@Router		/api/v1/folders/{id}/files [get]
func ListFilesByFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.ListByFolder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
