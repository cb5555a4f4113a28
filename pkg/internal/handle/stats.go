package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/log"
)

// doStats 是一个通用封装：
//  1. 统一抽取并校验用户
//  2. 创建 StatsService
//  3. 统一错误处理与 JSON 输出
//
// 回调 fn 中负责具体业务逻辑与返回数据（可返回任意 JSON-able 结构）.
func doStats(c *gin.Context, errLogMsg string, fn func(svc *service.StatsService, user string) (any, error)) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewStatsService(c.Request.Context())

	data, e := fn(svc, user)
	if e != nil {
		if errLogMsg == "" {
			errLogMsg = "stats handle failed"
		}

		l.Error().Err(e).Msg(errLogMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": e.Error()})

		return
	}

	c.JSON(http.StatusOK, data)
}

// GetStatsSummary 当前用户文件/文件夹/存储总体统计.
//
//	@Summary	统计汇总
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.StatsSummary
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats/summary [get]
func GetStatsSummary(c *gin.Context) {
	doStats(c, "stats summary failed", func(svc *service.StatsService, user string) (any, error) {
		return svc.Summary(c.Request.Context(), user)
	})
}

// GetStatsByType 按文件类型聚合统计.
//
//	@Summary	按类型统计
//	@Tags		统计
//	@Produce	json
//	@Success	200	{array}	types.StatsTypeItem
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats/types [get]
func GetStatsByType(c *gin.Context) {
	doStats(c, "stats by type failed", func(svc *service.StatsService, user string) (any, error) {
		return svc.ByType(c.Request.Context(), user)
	})
}
