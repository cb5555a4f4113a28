package service

import (
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/cloudvault/pkg/configs"
	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage/db"
	"github.com/yeisme/cloudvault/pkg/internal/storage/mq"
	"github.com/yeisme/cloudvault/pkg/internal/storage/s3"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
	"github.com/yeisme/cloudvault/pkg/queue"
)

// FileService 负责文件目录业务逻辑：字节写入对象存储，元数据落库，
// 引用式标签与审计流水联动. 不处理 HTTP 细节.
type FileService struct {
	s3Client *s3.Client
	dbClient *db.Client
	mqClient *mq.Client
	recorder *ActivityService
}

// NewFileService 从 context 获取依赖实例.
func NewFileService(c context.Context) *FileService {
	s3c := ctxPkg.GetS3Client(c)
	dbc := ctxPkg.GetDBClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if s3c == nil || s3c.Client == nil || dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FileService{
		s3Client: s3c,
		dbClient: dbc,
		mqClient: ctxPkg.GetMQClient(c),
		recorder: NewActivityService(c),
	}
}

// Upload 上传文件：先写对象存储，句柄与 URL 都拿到后才落库.
// 对象存储失败时不产生任何元数据记录（UploadFailed）.
func (fs *FileService) Upload(ctx context.Context, owner string, req *types.UploadFileRequest,
	reader io.Reader, size int64, contentType string,
) (*types.UploadFileResponse, error) {
	if _, ok := model.AllowedFileTypes[req.Type]; !ok {
		return nil, types.InvalidArgument("unknown file type %q", req.Type)
	}

	folderID := normalizeParent(req.FolderID)
	if folderID != nil {
		if err := fs.checkFolder(ctx, owner, *folderID); err != nil {
			return nil, err
		}
	}

	if err := fs.checkIdentity(ctx, owner, folderID, req.Name, ""); err != nil {
		return nil, err
	}

	put, err := fs.s3Client.Put(ctx, owner, req.Name, reader, size, contentType)
	if err != nil {
		return nil, types.UploadFailed("store file bytes: %v", err)
	}

	if put.ObjectKey == "" || put.URL == "" {
		return nil, types.UploadFailed("blob store returned incomplete handle")
	}

	file := model.File{
		ID:        newID(),
		Name:      req.Name,
		Type:      req.Type,
		Size:      put.Size,
		OwnerID:   owner,
		FolderID:  folderID,
		ObjectKey: put.ObjectKey,
		URL:       put.URL,
	}

	err = fs.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}

		if len(req.Tags) > 0 {
			tags, err := resolveTags(tx, owner, req.Tags)
			if err != nil {
				return err
			}

			if err := tx.Model(&file).Association("Tags").Append(tags); err != nil {
				return err
			}
		}

		// 上传计入存储用量，定时任务兜底校准
		return tx.Model(&model.User{}).
			Where("id = ?", owner).
			Update("storage_used", gorm.Expr("storage_used + ?", put.Size)).Error
	})
	if err != nil {
		// 元数据落库失败，回收已写入的对象
		if rmErr := fs.s3Client.Remove(ctx, put.ObjectKey); rmErr != nil {
			nlog.Logger().Error().Err(rmErr).Str("object_key", put.ObjectKey).Msg("cleanup orphan object failed")
		}

		return nil, err
	}

	fs.recorder.Record(owner, model.ActionUpload, &file.ID, nil)
	fs.publishUploaded(&file, contentType)

	return &types.UploadFileResponse{
		ID:       file.ID,
		Name:     file.Name,
		Type:     file.Type,
		Size:     file.Size,
		Owner:    file.OwnerID,
		FolderID: file.FolderID,
	}, nil
}

// GetByID 获取文件详情（含标签）.
func (fs *FileService) GetByID(ctx context.Context, owner, id string) (*types.FileResponse, error) {
	file, err := fs.getOwned(ctx, owner, id, true)
	if err != nil {
		return nil, err
	}

	return toFileResponse(file), nil
}

// Update 更新文件：重命名并全量替换标签. 重命名记录 rename 流水.
func (fs *FileService) Update(ctx context.Context, owner, id string, req *types.UpdateFileRequest) (*types.FileResponse, error) {
	file, err := fs.getOwned(ctx, owner, id, false)
	if err != nil {
		return nil, err
	}

	renamed := file.Name != req.Name

	if renamed {
		if err := fs.checkIdentity(ctx, owner, file.FolderID, req.Name, file.ID); err != nil {
			return nil, err
		}
	}

	err = fs.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if renamed {
			if err := tx.Model(&model.File{}).
				Where("id = ?", file.ID).
				Update("name", req.Name).Error; err != nil {
				return err
			}
		}

		tags, err := resolveTags(tx, owner, req.Tags)
		if err != nil {
			return err
		}

		return tx.Model(file).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	if renamed {
		fs.recorder.Record(owner, model.ActionRename, &file.ID, nil)
	}

	return fs.GetByID(ctx, owner, id)
}

// Delete 删除文件：先删元数据行，对象存储清理尽力而为（失败只记日志）.
func (fs *FileService) Delete(ctx context.Context, owner, id string) error {
	file, err := fs.getOwned(ctx, owner, id, false)
	if err != nil {
		return err
	}

	err = fs.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Association("Tags").Clear(); err != nil {
			return err
		}

		if err := tx.Delete(&model.File{}, "id = ?", file.ID).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", owner).
			Update("storage_used", gorm.Expr("storage_used - ?", file.Size)).Error
	})
	if err != nil {
		return err
	}

	if rmErr := fs.s3Client.Remove(ctx, file.ObjectKey); rmErr != nil {
		nlog.Logger().Error().Err(rmErr).Str("object_key", file.ObjectKey).Msg("remove object failed")
	}

	fs.recorder.Record(owner, model.ActionDelete, &id, nil)
	fs.publishDeleted(file, false)

	return nil
}

// Download 签发预签名下载 URL，记录 download 流水.
func (fs *FileService) Download(ctx context.Context, owner, id string) (*types.DownloadFileResponse, error) {
	file, err := fs.getOwned(ctx, owner, id, false)
	if err != nil {
		return nil, err
	}

	expiry := configs.GetConfig().S3.GetPresignExpiry()

	u, err := fs.s3Client.PresignGet(ctx, file.ObjectKey, file.Name, expiry)
	if err != nil {
		return nil, err
	}

	fs.recorder.Record(owner, model.ActionDownload, &file.ID, nil)

	return &types.DownloadFileResponse{
		ID:        file.ID,
		Name:      file.Name,
		URL:       u.String(),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// ListByFolder 列出文件夹内的文件. 空结果视为 NotFound.
func (fs *FileService) ListByFolder(ctx context.Context, owner, folderID string) ([]types.FileResponse, error) {
	if err := fs.checkFolder(ctx, owner, folderID); err != nil {
		return nil, err
	}

	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ? AND folder_id = ?", owner, folderID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, types.NotFound("no files in folder %s", folderID)
	}

	return toFileResponses(files), nil
}

// ListByOwner 列出用户全部文件，空结果为成功.
func (fs *FileService) ListByOwner(ctx context.Context, owner string) ([]types.FileResponse, error) {
	var files []model.File

	err := fs.dbClient.GetDB().WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	return toFileResponses(files), nil
}

// getOwned 按所有者加载文件，未找到返回 NotFound.
func (fs *FileService) getOwned(ctx context.Context, owner, id string, withTags bool) (*model.File, error) {
	var file model.File

	query := fs.dbClient.GetDB().WithContext(ctx)
	if withTags {
		query = query.Preload("Tags")
	}

	err := query.Where("id = ? AND owner_id = ?", id, owner).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("file %s not found", id)
		}

		return nil, err
	}

	return &file, nil
}

// checkFolder 校验文件夹存在且属于该用户.
func (fs *FileService) checkFolder(ctx context.Context, owner, folderID string) error {
	var count int64

	err := fs.dbClient.GetDB().WithContext(ctx).
		Model(&model.Folder{}).
		Where("id = ? AND owner_id = ?", folderID, owner).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return types.NotFound("folder %s not found", folderID)
	}

	return nil
}

// checkIdentity (Name, OwnerID, FolderID) 三元组唯一性预检.
func (fs *FileService) checkIdentity(ctx context.Context, owner string, folderID *string, name, excludeID string) error {
	query := fs.dbClient.GetDB().WithContext(ctx).
		Model(&model.File{}).
		Where("owner_id = ? AND name = ?", owner, name)

	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return types.Conflict("file %q already exists in this folder", name)
	}

	return nil
}

// publishUploaded 发布 cv.file.uploaded 事件（尽力而为）.
func (fs *FileService) publishUploaded(file *model.File, contentType string) {
	cfg := configs.GetConfig().Events
	if fs.mqClient == nil || !cfg.Enabled || !cfg.File.Uploaded {
		return
	}

	payload := queue.FileUploadedPayload{
		File:    toFileRef(file, contentType),
		OwnerID: file.OwnerID,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicFileUploaded, payload, queue.WithProducer("cloudvault"))
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("encode file uploaded event failed")
		return
	}

	if err := fs.mqClient.Publish(context.Background(), queue.TopicFileUploaded, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish file uploaded event failed")
	}
}

// publishDeleted 发布 cv.file.deleted 事件（尽力而为）.
func (fs *FileService) publishDeleted(file *model.File, bulk bool) {
	cfg := configs.GetConfig().Events
	if fs.mqClient == nil || !cfg.Enabled || !cfg.File.Deleted {
		return
	}

	payload := queue.FileDeletedPayload{
		File:    toFileRef(file, ""),
		OwnerID: file.OwnerID,
		Bulk:    bulk,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicFileDeleted, payload, queue.WithProducer("cloudvault"))
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("encode file deleted event failed")
		return
	}

	if err := fs.mqClient.Publish(context.Background(), queue.TopicFileDeleted, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish file deleted event failed")
	}
}

func toFileRef(file *model.File, contentType string) queue.FileRef {
	ref := queue.FileRef{
		ID:          file.ID,
		Name:        file.Name,
		Type:        file.Type,
		Size:        file.Size,
		ObjectKey:   file.ObjectKey,
		ContentType: contentType,
	}

	if file.FolderID != nil {
		ref.FolderID = *file.FolderID
	}

	return ref
}

// resolveTags 把标签名解析为标签行，不存在的按用户命名空间即时创建.
func resolveTags(tx *gorm.DB, owner string, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}

		var tag model.Tag

		err := tx.Where("name = ? AND used_by = ?", name, owner).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{ID: newID(), Name: name, UsedBy: owner}
			err = tx.Create(&tag).Error
		}

		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

func toFileResponse(file *model.File) *types.FileResponse {
	tags := make([]string, 0, len(file.Tags))
	for i := range file.Tags {
		tags = append(tags, file.Tags[i].Name)
	}

	return &types.FileResponse{
		ID:        file.ID,
		Name:      file.Name,
		Type:      file.Type,
		Size:      file.Size,
		Owner:     file.OwnerID,
		FolderID:  file.FolderID,
		URL:       file.URL,
		Tags:      tags,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}

func toFileResponses(files []model.File) []types.FileResponse {
	out := make([]types.FileResponse, 0, len(files))
	for i := range files {
		out = append(out, *toFileResponse(&files[i]))
	}

	return out
}
