package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// LogActivity 显式记录一条审计日志.
//
//	@Summary		记录审计日志
//	@Description	action 为 upload|download|delete|move|rename，file 与 folder 必须且只能提供一个
//	@Tags			审计
//	@Accept			json
//	@Produce		json
//	@Param			activity	body		types.LogActivityRequest	true	"记录请求"
//	@Success		201			{object}	types.ActivityResponse		"日志项"
//	@Failure		400			{object}	map[string]string			"请求参数错误"
//	@Router			/api/v1/activities [post]
func LogActivity(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.LogActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.Log(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListActivities 列出全部审计日志（空结果为 404）.
//
//	@Summary	列出全部审计日志
//	@Tags		审计
//	@Produce	json
//	@Success	200	{array}	types.ActivityResponse
//	@Failure	404	{object}	map[string]string	"无记录"
//	@Router		/api/v1/activities [get]
func ListActivities(c *gin.Context) {
	if _, err := checkUser(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUserActivities 列出当前用户的审计日志.
//
//	@Summary	列出用户审计日志
//	@Tags		审计
//	@Produce	json
//	@Success	200	{array}	types.ActivityResponse
//	@Router		/api/v1/activities/me [get]
func ListUserActivities(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.ListByUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListRecentActivities 列出当前用户最近 N 条审计日志（limit 缺省 10）.
//
//	@Summary	列出最近审计日志
//	@Tags		审计
//	@Produce	json
//	@Param		limit	query	int	false	"条数，默认 10"
//	@Success	200		{array}	types.ActivityResponse
//	@Router		/api/v1/activities/recent [get]
func ListRecentActivities(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.ListRecent(c.Request.Context(), user, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFileActivities 列出指定文件的审计日志.
//
//	@Summary	列出文件审计日志
//	@Tags		审计
//	@Produce	json
//	@Param		id	path	string	true	"文件 ID"
//	@Success	200	{array}	types.ActivityResponse
//	@Router		/api/v1/activities/file/{id} [get]
func ListFileActivities(c *gin.Context) {
	if _, err := checkUser(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.ListByFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFolderActivities 列出指定文件夹的审计日志.
//
//	@Summary	列出文件夹审计日志
//	@Tags		审计
//	@Produce	json
//	@Param		id	path	string	true	"文件夹 ID"
//	@Success	200	{array}	types.ActivityResponse
//	@Router		/api/v1/activities/folder/{id} [get]
func ListFolderActivities(c *gin.Context) {
	if _, err := checkUser(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewActivityService(c.Request.Context())

	resp, err := svc.ListByFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
