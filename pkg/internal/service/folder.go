package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage/db"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
)

// FolderService 负责文件夹树的维护：物化路径、环路防护与级联更新.
type FolderService struct {
	dbClient *db.Client
	recorder *ActivityService
}

// NewFolderService 从 context 获取依赖实例.
func NewFolderService(c context.Context) *FolderService {
	dbc := ctxPkg.GetDBClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FolderService{
		dbClient: dbc,
		recorder: NewActivityService(c),
	}
}

// Create 创建文件夹. 父级缺省为根级；同级（同所有者同父级）不允许重名.
// 文件夹创建不产生审计记录.
func (s *FolderService) Create(ctx context.Context, owner string, req *types.CreateFolderRequest) (*types.FolderResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, types.InvalidArgument("folder name is required")
	}

	unlock := lockOwner(owner)
	defer unlock()

	dbx := s.dbClient.GetDB().WithContext(ctx)

	var path string

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.getOwned(ctx, owner, *req.ParentID)
		if err != nil {
			return nil, err
		}

		path = parent.SubtreePrefix()
	}

	if err := s.checkSibling(ctx, owner, req.ParentID, req.Name, ""); err != nil {
		return nil, err
	}

	folder := model.Folder{
		ID:       newID(),
		Name:     req.Name,
		OwnerID:  owner,
		ParentID: normalizeParent(req.ParentID),
		Path:     path,
	}

	if err := dbx.Create(&folder).Error; err != nil {
		return nil, err
	}

	return s.toResponse(ctx, &folder)
}

// GetByID 获取文件夹详情，祖先链解析为 (id, name) 摘要.
func (s *FolderService) GetByID(ctx context.Context, owner, id string) (*types.FolderResponse, error) {
	folder, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, folder)
}

// ListRoots 列出根级文件夹，最新的在前.
func (s *FolderService) ListRoots(ctx context.Context, owner string) ([]types.FolderListItem, error) {
	var folders []model.Folder

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("owner_id = ? AND parent_id IS NULL", owner).
		Order("created_at DESC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}

	return toListItems(folders), nil
}

// ListChildren 列出直接子文件夹，最新的在前.
func (s *FolderService) ListChildren(ctx context.Context, owner, id string) ([]types.FolderListItem, error) {
	if _, err := s.getOwned(ctx, owner, id); err != nil {
		return nil, err
	}

	var folders []model.Folder

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("owner_id = ? AND parent_id = ?", owner, id).
		Order("created_at DESC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}

	return toListItems(folders), nil
}

// GetPath 返回文件夹的完整路径（根到直接父级的祖先摘要）.
func (s *FolderService) GetPath(ctx context.Context, owner, id string) (*types.FolderPathResponse, error) {
	folder, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	ancestors, err := s.resolveAncestors(ctx, folder)
	if err != nil {
		return nil, err
	}

	return &types.FolderPathResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		Ancestors: ancestors,
	}, nil
}

// BuildTree 组装文件夹树. rootID 为空时返回根级森林.
// 非递归实现：一次子树查询 + 内存组装，子节点按创建时间排序.
func (s *FolderService) BuildTree(ctx context.Context, owner string, rootID *string) (*types.FolderTreeResponse, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var (
		folders []model.Folder
		root    *model.Folder
	)

	if rootID != nil && *rootID != "" {
		r, err := s.getOwned(ctx, owner, *rootID)
		if err != nil {
			return nil, err
		}

		root = r

		// 子树查询：后代的 Path 均以 root 的子树前缀开头
		err = dbx.
			Where("owner_id = ? AND path LIKE ?", owner, likePrefix(r.SubtreePrefix())).
			Order("created_at ASC").
			Find(&folders).Error
		if err != nil {
			return nil, err
		}
	} else {
		err := dbx.
			Where("owner_id = ?", owner).
			Order("created_at ASC").
			Find(&folders).Error
		if err != nil {
			return nil, err
		}
	}

	nodes := assembleTree(folders, root)

	return &types.FolderTreeResponse{Root: rootID, Nodes: nodes}, nil
}

// Rename 重命名文件夹. 名称未变化时为无操作成功；
// 新名称需通过同级唯一性检查. 后代不受影响（路径存 ID 而非名称）.
func (s *FolderService) Rename(ctx context.Context, owner, id string, req *types.RenameFolderRequest) (*types.FolderResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, types.InvalidArgument("folder name is required")
	}

	unlock := lockOwner(owner)
	defer unlock()

	folder, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if folder.Name == req.Name {
		return s.toResponse(ctx, folder)
	}

	if err := s.checkSibling(ctx, owner, folder.ParentID, req.Name, folder.ID); err != nil {
		return nil, err
	}

	folder.Name = req.Name

	if err := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.Folder{}).
		Where("id = ?", folder.ID).
		Update("name", req.Name).Error; err != nil {
		return nil, err
	}

	s.recorder.Record(owner, model.ActionRename, nil, &folder.ID)

	return s.toResponse(ctx, folder)
}

// Move 将文件夹（连同整棵子树）移动到新父级.
// 防环检查：目标不能是自身，也不能是自身的后代；
// 所有后代的路径通过前缀拼接一次性级联更新.
func (s *FolderService) Move(ctx context.Context, owner, id string, req *types.MoveFolderRequest) (*types.FolderResponse, error) {
	if req.NewParentID == id {
		return nil, types.InvalidArgument("cannot move a folder into itself")
	}

	unlock := lockOwner(owner)
	defer unlock()

	folder, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	newParent, err := s.getOwned(ctx, owner, req.NewParentID)
	if err != nil {
		return nil, err
	}

	// 目标是自身后代时会形成环：目标的祖先链包含待移动节点
	if newParent.HasAncestor(id) {
		return nil, types.InvalidArgument("cannot move a folder into its own descendant")
	}

	if err := s.checkSibling(ctx, owner, &req.NewParentID, folder.Name, folder.ID); err != nil {
		return nil, err
	}

	oldPrefix := folder.SubtreePrefix()
	newPath := newParent.SubtreePrefix()
	newPrefix := newPath + folder.ID + model.PathSeparator

	err = s.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Folder{}).
			Where("id = ?", folder.ID).
			Updates(map[string]any{"parent_id": req.NewParentID, "path": newPath}).Error; err != nil {
			return err
		}

		// 级联后代：把旧子树前缀替换为新前缀
		var descendants []model.Folder
		if err := tx.
			Where("owner_id = ? AND path LIKE ?", owner, likePrefix(oldPrefix)).
			Find(&descendants).Error; err != nil {
			return err
		}

		for i := range descendants {
			spliced := newPrefix + strings.TrimPrefix(descendants[i].Path, oldPrefix)
			if err := tx.Model(&model.Folder{}).
				Where("id = ?", descendants[i].ID).
				Update("path", spliced).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	folder.ParentID = &req.NewParentID
	folder.Path = newPath

	s.recorder.Record(owner, model.ActionMove, nil, &folder.ID)

	return s.toResponse(ctx, folder)
}

// Delete 递归删除子树，子级先于父级. 子树内的文件不删除，
// 而是置为未归档（folder_id = NULL）.
func (s *FolderService) Delete(ctx context.Context, owner, id string) (*types.DeleteFolderResponse, error) {
	unlock := lockOwner(owner)
	defer unlock()

	folder, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	var (
		deleted  int
		orphaned int64
	)

	err = s.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtree []model.Folder
		if err := tx.
			Where("owner_id = ? AND path LIKE ?", owner, likePrefix(folder.SubtreePrefix())).
			Find(&subtree).Error; err != nil {
			return err
		}

		subtree = append(subtree, *folder)

		ids := make([]string, 0, len(subtree))
		for i := range subtree {
			ids = append(ids, subtree[i].ID)
		}

		// 文件不随文件夹删除，转为未归档
		res := tx.Model(&model.File{}).
			Where("owner_id = ? AND folder_id IN ?", owner, ids).
			Update("folder_id", nil)
		if res.Error != nil {
			return res.Error
		}

		orphaned = res.RowsAffected

		// 深度大的在前，保证子级先删
		sort.Slice(subtree, func(i, j int) bool {
			return len(subtree[i].Path) > len(subtree[j].Path)
		})

		for i := range subtree {
			if err := tx.Delete(&model.Folder{}, "id = ?", subtree[i].ID).Error; err != nil {
				return err
			}
		}

		deleted = len(subtree)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(owner, model.ActionDelete, nil, &id)

	return &types.DeleteFolderResponse{
		DeletedFolders: deleted,
		OrphanedFiles:  int(orphaned),
	}, nil
}

// getOwned 按所有者加载文件夹，未找到返回 NotFound.
func (s *FolderService) getOwned(ctx context.Context, owner, id string) (*model.Folder, error) {
	var folder model.Folder

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("folder %s not found", id)
		}

		return nil, err
	}

	return &folder, nil
}

// checkSibling 同级唯一性检查：同所有者同父级下名称不能重复.
// excludeID 用于重命名/移动时排除自身.
func (s *FolderService) checkSibling(ctx context.Context, owner string, parentID *string, name, excludeID string) error {
	query := s.dbClient.GetDB().WithContext(ctx).
		Model(&model.Folder{}).
		Where("owner_id = ? AND name = ?", owner, name)

	if parentID != nil && *parentID != "" {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return types.Conflict("folder %q already exists under the same parent", name)
	}

	return nil
}

// resolveAncestors 将祖先 ID 链解析为 (id, name) 摘要，保持根到父级的顺序.
func (s *FolderService) resolveAncestors(ctx context.Context, folder *model.Folder) ([]types.FolderSummary, error) {
	ids := folder.PathIDs()
	if len(ids) == 0 {
		return []types.FolderSummary{}, nil
	}

	var ancestors []model.Folder

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ancestors).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]string, len(ancestors))
	for i := range ancestors {
		byID[ancestors[i].ID] = ancestors[i].Name
	}

	summaries := make([]types.FolderSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, types.FolderSummary{ID: id, Name: byID[id]})
	}

	return summaries, nil
}

// toResponse 组装文件夹详情.
func (s *FolderService) toResponse(ctx context.Context, folder *model.Folder) (*types.FolderResponse, error) {
	ancestors, err := s.resolveAncestors(ctx, folder)
	if err != nil {
		return nil, err
	}

	resp := &types.FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		Owner:     types.FolderOwner{ID: folder.OwnerID},
		Ancestors: ancestors,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}

	var owner model.User
	if err := s.dbClient.GetDB().WithContext(ctx).
		Select("id", "username").
		Where("id = ?", folder.OwnerID).
		First(&owner).Error; err == nil {
		resp.Owner.Name = owner.Username
	}

	if len(ancestors) > 0 {
		parent := ancestors[len(ancestors)-1]
		resp.Parent = &parent
	}

	return resp, nil
}

// assembleTree 在内存中把平铺的文件夹集合组装为森林，root 非空时只返回其直接子树.
// 迭代实现：按路径深度降序处理，任一节点组装时其子列表已完成，调用栈不随树深增长.
// 入参按创建时间升序，同级节点深度相同，稳定排序保持兄弟间的创建顺序.
func assembleTree(folders []model.Folder, root *model.Folder) []types.FolderTreeNode {
	sort.SliceStable(folders, func(i, j int) bool {
		return len(folders[i].Path) > len(folders[j].Path)
	})

	childNodes := make(map[string][]types.FolderTreeNode)

	for i := range folders {
		f := &folders[i]

		node := types.FolderTreeNode{ID: f.ID, Name: f.Name, Children: childNodes[f.ID]}
		if node.Children == nil {
			node.Children = []types.FolderTreeNode{}
		}

		key := ""
		if f.ParentID != nil {
			key = *f.ParentID
		}

		childNodes[key] = append(childNodes[key], node)
	}

	rootKey := ""
	if root != nil {
		rootKey = root.ID
	}

	nodes := childNodes[rootKey]
	if nodes == nil {
		nodes = []types.FolderTreeNode{}
	}

	return nodes
}

// normalizeParent 空串视为根级.
func normalizeParent(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}

	return parentID
}

// likePrefix 前缀匹配模式，转义 LIKE 元字符.
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer("%", "\\%", "_", "\\_").Replace(prefix)
	return escaped + "%"
}

func toListItems(folders []model.Folder) []types.FolderListItem {
	items := make([]types.FolderListItem, 0, len(folders))
	for i := range folders {
		items = append(items, types.FolderListItem{
			ID:        folders[i].ID,
			Name:      folders[i].Name,
			UpdatedAt: folders[i].UpdatedAt,
		})
	}

	return items
}
