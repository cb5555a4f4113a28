package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// CreateTag 创建标签.
//
//	@Summary	创建标签
//	@Tags		标签
//	@Accept		json
//	@Produce	json
//	@Param		tag	body		types.CreateTagRequest	true	"创建标签请求"
//	@Success	201	{object}	types.TagResponse		"标签详情"
//	@Failure	409	{object}	map[string]string		"重名"
//	@Router		/api/v1/tags [post]
func CreateTag(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewTagService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTag 获取标签详情.
//
//	@Summary	获取标签
//	@Tags		标签
//	@Produce	json
//	@Param		id	path		string				true	"标签 ID"
//	@Success	200	{object}	types.TagResponse	"标签详情"
//	@Failure	404	{object}	map[string]string	"标签不存在"
//	@Router		/api/v1/tags/{id} [get]
func GetTag(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTagService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTags 列出当前用户的标签. 提供 q 参数时做名称子串搜索.
//
//	@Summary	列出/搜索标签
//	@Tags		标签
//	@Produce	json
//	@Param		q	query	string	false	"名称子串"
//	@Success	200	{array}	types.TagResponse
//	@Router		/api/v1/tags [get]
func ListTags(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTagService(c.Request.Context())

	var resp []types.TagResponse

	if q := c.Query("q"); q != "" {
		resp, err = svc.SearchByName(c.Request.Context(), user, q)
	} else {
		resp, err = svc.ListByUser(c.Request.Context(), user)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTag 重命名标签.
//
//	@Summary	重命名标签
//	@Tags		标签
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string					true	"标签 ID"
//	@Param		tag	body		types.UpdateTagRequest	true	"重命名请求"
//	@Success	200	{object}	types.TagResponse		"标签详情"
//	@Failure	404	{object}	map[string]string		"标签不存在"
//	@Failure	409	{object}	map[string]string		"重名"
//	@Router		/api/v1/tags/{id} [put]
func UpdateTag(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewTagService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTag 删除标签及其文件关联.
//
//	@Summary	删除标签
//	@Tags		标签
//	@Produce	json
//	@Param		id	path		string				true	"标签 ID"
//	@Success	200	{object}	map[string]string	"删除成功"
//	@Failure	404	{object}	map[string]string	"标签不存在"
//	@Router		/api/v1/tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTagService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
