package service

import (
	"context"
	"strings"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// SearchByName 按名称子串搜索（大小写不敏感）. 零匹配视为 NotFound.
func (fs *FileService) SearchByName(ctx context.Context, owner, query string) ([]types.FileResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.InvalidArgument("search query is required")
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ? AND LOWER(name) LIKE ?", owner, containsPattern(query)).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, types.NotFound("no files match %q", query)
	}

	return toFileResponses(files), nil
}

// SearchByTag 按标签名子串搜索，经由引用式标签关联表解析. 零匹配视为 NotFound.
func (fs *FileService) SearchByTag(ctx context.Context, owner, tag string) ([]types.FileResponse, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, types.InvalidArgument("tag query is required")
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Joins("JOIN file_tags ON file_tags.file_id = files.id").
		Joins("JOIN tags ON tags.id = file_tags.tag_id").
		Where("files.owner_id = ? AND LOWER(tags.name) LIKE ?", owner, containsPattern(tag)).
		Group("files.id").
		Order("files.created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, types.NotFound("no files tagged %q", tag)
	}

	return toFileResponses(files), nil
}

// FilterByType 按文件类型过滤，空结果为成功，最新的在前.
func (fs *FileService) FilterByType(ctx context.Context, owner, fileType string) ([]types.FileResponse, error) {
	if _, ok := model.AllowedFileTypes[fileType]; !ok {
		return nil, types.InvalidArgument("unknown file type %q", fileType)
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ? AND type = ?", owner, fileType).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	return toFileResponses(files), nil
}

// FilterBySizeRange 按大小区间过滤（闭区间，字节）. 空结果为成功.
func (fs *FileService) FilterBySizeRange(ctx context.Context, owner string, req *types.SizeRangeRequest) ([]types.FileResponse, error) {
	if req.MinSize == nil || req.MaxSize == nil {
		return nil, types.InvalidArgument("min_size and max_size are required")
	}

	minSize, maxSize := *req.MinSize, *req.MaxSize

	if minSize < 0 || maxSize < 0 {
		return nil, types.InvalidArgument("size bounds must be non-negative")
	}

	if minSize > maxSize {
		return nil, types.InvalidArgument("min_size must not exceed max_size")
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ? AND size >= ? AND size <= ?", owner, minSize, maxSize).
		Order("size DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	return toFileResponses(files), nil
}

// containsPattern 大小写不敏感的子串匹配模式.
func containsPattern(q string) string {
	escaped := strings.NewReplacer("%", "\\%", "_", "\\_").Replace(strings.ToLower(q))
	return "%" + escaped + "%"
}
