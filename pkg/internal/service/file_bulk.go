package service

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
)

// blobCleanupConcurrency 批量删除时对象存储清理的并发上限.
const blobCleanupConcurrency = 8

// BulkDelete 批量删除文件. 不存在的 ID 跳过而不报错，
// 返回的 Deleted 为实际删除条数；全部未命中视为 NotFound.
// 元数据删除在单个事务中完成，对象存储清理并发尽力而为.
func (fs *FileService) BulkDelete(ctx context.Context, owner string, req *types.BulkDeleteRequest) (*types.BulkDeleteResponse, error) {
	if len(req.FileIDs) == 0 {
		return nil, types.InvalidArgument("file_ids is required")
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Where("owner_id = ? AND id IN ?", owner, req.FileIDs).
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, types.NotFound("none of the requested files exist")
	}

	ids := make([]string, 0, len(files))

	var totalSize int64

	for i := range files {
		ids = append(ids, files[i].ID)
		totalSize += files[i].Size
	}

	err = fs.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM file_tags WHERE file_id IN ?", ids).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.File{}, "id IN ?", ids).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", owner).
			Update("storage_used", gorm.Expr("storage_used - ?", totalSize)).Error
	})
	if err != nil {
		return nil, err
	}

	// 对象存储清理并发展开，失败只记日志，不影响已完成的元数据删除
	group, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	group.SetLimit(blobCleanupConcurrency)

	for i := range files {
		file := files[i]

		group.Go(func() error {
			if err := fs.s3Client.Remove(gctx, file.ObjectKey); err != nil {
				nlog.Logger().Error().Err(err).
					Str("object_key", file.ObjectKey).
					Msg("bulk delete: remove object failed")
			}

			return nil
		})
	}

	_ = group.Wait()

	for i := range files {
		fs.recorder.Record(owner, model.ActionDelete, &files[i].ID, nil)
		fs.publishDeleted(&files[i], true)
	}

	return &types.BulkDeleteResponse{
		Requested: len(req.FileIDs),
		Deleted:   len(files),
	}, nil
}

// BulkMove 批量移动文件到目标文件夹. 目标不存在视为 NotFound；
// 零行变更视为 NoOp. 审计只记实际移动的文件.
func (fs *FileService) BulkMove(ctx context.Context, owner string, req *types.BulkMoveRequest) (*types.BulkMoveResponse, error) {
	if len(req.FileIDs) == 0 {
		return nil, types.InvalidArgument("file_ids is required")
	}

	if req.NewFolderID == "" {
		return nil, types.InvalidArgument("new_folder is required")
	}

	if err := fs.checkFolder(ctx, owner, req.NewFolderID); err != nil {
		return nil, err
	}

	// 先解析命中的文件，更新与审计都只针对它们
	var ids []string

	err := fs.dbClient.GetDB().WithContext(ctx).
		Model(&model.File{}).
		Where("owner_id = ? AND id IN ?", owner, req.FileIDs).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, types.NoOp("no files were moved")
	}

	res := fs.dbClient.GetDB().WithContext(ctx).
		Model(&model.File{}).
		Where("owner_id = ? AND id IN ?", owner, ids).
		Update("folder_id", req.NewFolderID)
	if res.Error != nil {
		return nil, res.Error
	}

	for i := range ids {
		fs.recorder.Record(owner, model.ActionMove, &ids[i], nil)
	}

	return &types.BulkMoveResponse{Moved: int(res.RowsAffected)}, nil
}

// AddTags 为文件添加标签（集合并集语义）：按名称解析标签行，
// 不存在的标签按用户命名空间即时创建，重复添加是无操作.
func (fs *FileService) AddTags(ctx context.Context, owner, id string, req *types.FileTagsRequest) (*types.FileResponse, error) {
	if len(req.Tags) == 0 {
		return nil, types.InvalidArgument("tags is required")
	}

	file, err := fs.getOwned(ctx, owner, id, false)
	if err != nil {
		return nil, err
	}

	err = fs.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, owner, req.Tags)
		if err != nil {
			return err
		}

		return tx.Model(file).Association("Tags").Append(tags)
	})
	if err != nil {
		return nil, err
	}

	return fs.GetByID(ctx, owner, id)
}

// RemoveTags 移除文件上的指定标签，未关联的名称忽略.
func (fs *FileService) RemoveTags(ctx context.Context, owner, id string, req *types.FileTagsRequest) (*types.FileResponse, error) {
	if len(req.Tags) == 0 {
		return nil, types.InvalidArgument("tags is required")
	}

	file, err := fs.getOwned(ctx, owner, id, false)
	if err != nil {
		return nil, err
	}

	var tags []model.Tag

	err = fs.dbClient.GetDB().WithContext(ctx).
		Where("used_by = ? AND name IN ?", owner, req.Tags).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := fs.dbClient.GetDB().WithContext(ctx).
			Model(file).Association("Tags").Delete(tags); err != nil {
			return nil, err
		}
	}

	return fs.GetByID(ctx, owner, id)
}
