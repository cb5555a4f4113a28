package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage/db"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
)

// TagService 标签注册表：每个用户维护独立的标签命名空间.
type TagService struct {
	dbClient *db.Client
}

// NewTagService 从 context 获取依赖实例.
func NewTagService(c context.Context) *TagService {
	dbc := ctxPkg.GetDBClient(c)

	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &TagService{dbClient: dbc}
}

// Create 创建标签，同一用户下名称唯一.
func (s *TagService) Create(ctx context.Context, owner string, req *types.CreateTagRequest) (*types.TagResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, types.InvalidArgument("tag name is required")
	}

	var count int64

	err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.Tag{}).
		Where("name = ? AND used_by = ?", req.Name, owner).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, types.Conflict("tag %q already exists", req.Name)
	}

	tag := model.Tag{ID: newID(), Name: req.Name, UsedBy: owner}

	if err := s.dbClient.GetDB().WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}

	return toTagResponse(&tag), nil
}

// GetByID 获取标签详情.
func (s *TagService) GetByID(ctx context.Context, owner, id string) (*types.TagResponse, error) {
	tag, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	return toTagResponse(tag), nil
}

// ListByUser 列出用户的全部标签，最新的在前，空结果为成功.
func (s *TagService) ListByUser(ctx context.Context, owner string) ([]types.TagResponse, error) {
	var tags []model.Tag

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("used_by = ?", owner).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return toTagResponses(tags), nil
}

// SearchByName 按名称子串搜索标签（大小写不敏感），空结果为成功.
func (s *TagService) SearchByName(ctx context.Context, owner, query string) ([]types.TagResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.InvalidArgument("search query is required")
	}

	var tags []model.Tag

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("used_by = ? AND LOWER(name) LIKE ?", owner, containsPattern(query)).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return toTagResponses(tags), nil
}

// Update 重命名标签，新名称需通过用户内唯一性检查.
func (s *TagService) Update(ctx context.Context, owner, id string, req *types.UpdateTagRequest) (*types.TagResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, types.InvalidArgument("tag name is required")
	}

	tag, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if tag.Name == req.Name {
		return toTagResponse(tag), nil
	}

	var count int64

	err = s.dbClient.GetDB().WithContext(ctx).
		Model(&model.Tag{}).
		Where("name = ? AND used_by = ? AND id <> ?", req.Name, owner, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, types.Conflict("tag %q already exists", req.Name)
	}

	if err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ?", id).
		Update("name", req.Name).Error; err != nil {
		return nil, err
	}

	tag.Name = req.Name

	return toTagResponse(tag), nil
}

// Delete 删除标签及其文件关联.
func (s *TagService) Delete(ctx context.Context, owner, id string) error {
	tag, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	return s.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM file_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Tag{}, "id = ?", tag.ID).Error
	})
}

func (s *TagService) getOwned(ctx context.Context, owner, id string) (*model.Tag, error) {
	var tag model.Tag

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("id = ? AND used_by = ?", id, owner).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("tag %s not found", id)
		}

		return nil, err
	}

	return &tag, nil
}

func toTagResponse(tag *model.Tag) *types.TagResponse {
	return &types.TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		UsedBy:    tag.UsedBy,
		CreatedAt: tag.CreatedAt,
	}
}

func toTagResponses(tags []model.Tag) []types.TagResponse {
	out := make([]types.TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, *toTagResponse(&tags[i]))
	}

	return out
}
