package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// CreateFolder 创建文件夹.
//
//	@Summary		创建文件夹
//	@Description	在指定父级（缺省为根级）下创建文件夹，同级不允许重名
//	@Tags			文件夹
//	@Accept			json
//	@Produce		json
//	@Param			folder	body		types.CreateFolderRequest	true	"创建文件夹请求"
//	@Success		201		{object}	types.FolderResponse		"文件夹详情"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Failure		404		{object}	map[string]string			"父文件夹不存在"
//	@Failure		409		{object}	map[string]string			"同级重名"
//	@Router			/api/v1/folders [post]
func CreateFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.CreateFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetFolder 获取文件夹详情.
//
//	@Summary	获取文件夹详情
//	@Tags		文件夹
//	@Produce	json
//	@Param		id	path		string					true	"文件夹 ID"
//	@Success	200	{object}	types.FolderResponse	"文件夹详情"
//	@Failure	404	{object}	map[string]string		"文件夹不存在"
//	@Router		/api/v1/folders/{id} [get]
func GetFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListRootFolders 列出根级文件夹.
//
//	@Summary	列出根级文件夹
//	@Tags		文件夹
//	@Produce	json
//	@Success	200	{array}	types.FolderListItem
//	@Router		/api/v1/folders [get]
func ListRootFolders(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.ListRoots(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFolderChildren 列出直接子文件夹.
//
//	@Summary	列出子文件夹
//	@Tags		文件夹
//	@Produce	json
//	@Param		id	path	string	true	"文件夹 ID"
//	@Success	200	{array}	types.FolderListItem
//	@Failure	404	{object}	map[string]string	"文件夹不存在"
//	@Router		/api/v1/folders/{id}/children [get]
func ListFolderChildren(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.ListChildren(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFolderPath 获取文件夹完整路径（根到直接父级）.
//
//	@Summary	获取文件夹路径
//	@Tags		文件夹
//	@Produce	json
//	@Param		id	path		string						true	"文件夹 ID"
//	@Success	200	{object}	types.FolderPathResponse	"路径"
//	@Failure	404	{object}	map[string]string			"文件夹不存在"
//	@Router		/api/v1/folders/{id}/path [get]
func GetFolderPath(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.GetPath(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFolderTree 获取嵌套文件夹树. root 查询参数缺省时返回根级森林.
//
//	@Summary	获取文件夹树
//	@Tags		文件夹
//	@Produce	json
//	@Param		root	query		string						false	"子树根文件夹 ID"
//	@Success	200		{object}	types.FolderTreeResponse	"嵌套树"
//	@Failure	404		{object}	map[string]string			"根文件夹不存在"
//	@Router		/api/v1/folders/tree [get]
func GetFolderTree(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rootID *string
	if root := c.Query("root"); root != "" {
		rootID = &root
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.BuildTree(c.Request.Context(), user, rootID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RenameFolder 重命名文件夹.
//
//	@Summary	重命名文件夹
//	@Tags		文件夹
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"文件夹 ID"
//	@Param		folder	body		types.RenameFolderRequest	true	"重命名请求"
//	@Success	200		{object}	types.FolderResponse		"文件夹详情"
//	@Failure	404		{object}	map[string]string			"文件夹不存在"
//	@Failure	409		{object}	map[string]string			"同级重名"
//	@Router		/api/v1/folders/{id} [put]
func RenameFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.RenameFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.Rename(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MoveFolder 移动文件夹（连同子树）.
//
//	@Summary	移动文件夹
//	@Description	将文件夹挂载到新父级，后代路径级联更新；禁止移入自身或后代
//	@Tags		文件夹
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"文件夹 ID"
//	@Param		move	body		types.MoveFolderRequest	true	"移动请求"
//	@Success	200		{object}	types.FolderResponse	"文件夹详情"
//	@Failure	400		{object}	map[string]string		"目标为自身或后代"
//	@Failure	404		{object}	map[string]string		"文件夹或目标不存在"
//	@Failure	409		{object}	map[string]string		"目标下重名"
//	@Router		/api/v1/folders/{id}/move [put]
func MoveFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.MoveFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.Move(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFolder 递归删除文件夹子树，文件转为未归档.
//
//	@Summary	删除文件夹
//	@Tags		文件夹
//	@Produce	json
//	@Param		id	path		string						true	"文件夹 ID"
//	@Success	200	{object}	types.DeleteFolderResponse	"删除结果"
//	@Failure	404	{object}	map[string]string			"文件夹不存在"
//	@Router		/api/v1/folders/{id} [delete]
func DeleteFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
