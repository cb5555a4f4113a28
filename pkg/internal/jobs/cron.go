// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/cloudvault/pkg/configs"
	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/storage"
	"github.com/yeisme/cloudvault/pkg/log"
	"github.com/yeisme/cloudvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 jobs.activity_prune_cron 清理超出保留期的审计日志
//   - 按 jobs.quota_reconcile_cron 用 files 表校准各账户的存储用量计数
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cfg configs.JobsConfig) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	retentionDays := cfg.ActivityRetentionDays
	if retentionDays <= 0 {
		retentionDays = configs.DefaultActivityRetentionDays
	}

	if err := sched.AddCron(JobActivityPrune, cfg.ActivityPruneCron, func(ctx context.Context) {
		runActivityPrune(ctx, retentionDays)
	}, baseCtx); err != nil {
		return err
	}

	if err := sched.AddCron(JobQuotaReconcile, cfg.QuotaReconcileCron, func(ctx context.Context) {
		runQuotaReconcile(ctx)
	}, baseCtx); err != nil {
		return err
	}

	return nil
}

// runActivityPrune 删除保留期之前的审计日志.
func runActivityPrune(ctx context.Context, retentionDays int) {
	l := log.Logger().With().Str("job", JobActivityPrune).Logger()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	n, err := service.NewActivityService(ctx).PruneBefore(ctx, cutoff)
	if err != nil {
		l.Error().Err(err).Time("cutoff", cutoff).Msg("activity prune failed")
		return
	}

	if n > 0 {
		l.Info().Int64("pruned", n).Time("cutoff", cutoff).Msg("pruned expired activities")
	}
}

// runQuotaReconcile 校准各账户的 storage_used 计数.
func runQuotaReconcile(ctx context.Context) {
	l := log.Logger().With().Str("job", JobQuotaReconcile).Logger()

	n, err := service.NewUserService(ctx).ReconcileStorageUsage(ctx)
	if err != nil {
		l.Error().Err(err).Msg("quota reconcile failed")
		return
	}

	if n > 0 {
		l.Info().Int64("corrected", n).Msg("reconciled storage usage")
	}
}
