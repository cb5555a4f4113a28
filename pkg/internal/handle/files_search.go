package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// SearchFilesByName 按名称子串搜索文件.
//
//	@Summary	按名称搜索文件
//	@Tags		文件搜索
//	@Produce	json
//	@Param		q	query	string	true	"名称子串（大小写不敏感）"
//	@Success	200	{array}	types.FileResponse
//	@Failure	404	{object}	map[string]string	"无匹配"
//	@Router		/api/v1/files/search [get]
func SearchFilesByName(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.SearchByName(c.Request.Context(), user, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchFilesByTag 按标签名子串搜索文件.
//
//	@Summary	按标签搜索文件
//	@Tags		文件搜索
//	@Produce	json
//	@Param		q	query	string	true	"标签名子串（大小写不敏感）"
//	@Success	200	{array}	types.FileResponse
//	@Failure	404	{object}	map[string]string	"无匹配"
//	@Router		/api/v1/files/search/tag [get]
func SearchFilesByTag(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.SearchByTag(c.Request.Context(), user, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FilterFilesByType 按文件类型过滤.
//
//	@Summary	按类型过滤文件
//	@Tags		文件搜索
//	@Produce	json
//	@Param		type	path	string	true	"文件类型 image|video|document"
//	@Success	200		{array}	types.FileResponse
//	@Failure	400		{object}	map[string]string	"未知类型"
//	@Router		/api/v1/files/type/{type} [get]
func FilterFilesByType(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.FilterByType(c.Request.Context(), user, c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FilterFilesBySize 按大小区间过滤（字节，闭区间）.
//
//	@Summary	按大小区间过滤文件
//	@Tags		文件搜索
//	@Produce	json
//	@Param		min_size	query	int	true	"最小字节数"
//	@Param		max_size	query	int	true	"最大字节数"
//	@Success	200			{array}	types.FileResponse
//	@Failure	400			{object}	map[string]string	"区间非法"
//	@Router		/api/v1/files/size [get]
func FilterFilesBySize(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.SizeRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.FilterBySizeRange(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
