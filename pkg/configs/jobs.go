package configs

import "github.com/spf13/viper"

const (
	DefaultActivityRetentionDays = 90          // 审计日志默认保留天数
	DefaultActivityPruneCron     = "0 3 * * *" // 每天 03:00 清理过期审计日志
	DefaultQuotaReconcileCron    = "20 * * * *" // 每小时校准一次存储用量计数
)

// JobsConfig 后台定时任务配置.
type JobsConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	ActivityRetentionDays int    `mapstructure:"activity_retention_days" rule:"min=1"`
	ActivityPruneCron     string `mapstructure:"activity_prune_cron"`
	QuotaReconcileCron    string `mapstructure:"quota_reconcile_cron"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.activity_retention_days", DefaultActivityRetentionDays)
	v.SetDefault("jobs.activity_prune_cron", DefaultActivityPruneCron)
	v.SetDefault("jobs.quota_reconcile_cron", DefaultQuotaReconcileCron)
}
