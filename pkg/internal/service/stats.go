package service

import (
	"context"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// StatsService 提供统计计算（基于 DB 的文件与文件夹表）.
type StatsService struct{ *FileService }

// NewStatsService 复用 FileService 的依赖.
func NewStatsService(c context.Context) *StatsService { return &StatsService{NewFileService(c)} }

// Summary 统计当前用户的文件/文件夹总量与存储用量.
func (s *StatsService) Summary(ctx context.Context, owner string) (types.StatsSummary, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	// 一次聚合查询拿到文件数、总大小与未归档数，避免多次往返
	var agg struct {
		TotalFiles   int64 `gorm:"column:total_files"`
		TotalSize    int64 `gorm:"column:total_size"`
		UnfiledFiles int64 `gorm:"column:unfiled_files"`
	}

	// COALESCE 避免空表时 SUM 为 NULL
	selectExpr := "COUNT(*) AS total_files, " +
		"COALESCE(SUM(size),0) AS total_size, " +
		"COALESCE(SUM(CASE WHEN folder_id IS NULL THEN 1 ELSE 0 END),0) AS unfiled_files"

	if err := dbx.Model(&model.File{}).
		Select(selectExpr).
		Where("owner_id = ?", owner).
		Scan(&agg).Error; err != nil {
		return types.StatsSummary{}, err
	}

	var totalFolders int64
	if err := dbx.Model(&model.Folder{}).
		Where("owner_id = ?", owner).
		Count(&totalFolders).Error; err != nil {
		return types.StatsSummary{}, err
	}

	summary := types.StatsSummary{
		TotalFiles:   agg.TotalFiles,
		TotalFolders: totalFolders,
		TotalSize:    agg.TotalSize,
		UnfiledFiles: agg.UnfiledFiles,
	}

	var user model.User
	if err := dbx.Select("storage_used", "storage_quota").
		Where("id = ?", owner).
		First(&user).Error; err == nil {
		summary.StorageUsed = user.StorageUsed
		summary.StorageQuota = user.StorageQuota
	}

	return summary, nil
}

// ByType 按文件类型聚合数量与大小.
func (s *StatsService) ByType(ctx context.Context, owner string) ([]types.StatsTypeItem, error) {
	var rows []types.StatsTypeItem

	err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.File{}).
		Select("type AS type, COUNT(*) AS count, COALESCE(SUM(size),0) AS size").
		Where("owner_id = ?", owner).
		Group("type").
		Order("size DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
