package service_test

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// mkFolder 创建文件夹的便捷入口.
func mkFolder(t *testing.T, svc *service.FolderService, ctx context.Context, owner, name string, parent *string) *types.FolderResponse {
	t.Helper()

	resp, err := svc.Create(ctx, owner, &types.CreateFolderRequest{Name: name, ParentID: parent})
	if err != nil {
		t.Fatalf("create folder %s: %v", name, err)
	}

	return resp
}

// loadFolder 读取文件夹行.
func loadFolder(t *testing.T, gdb *gorm.DB, id string) *model.Folder {
	t.Helper()

	var folder model.Folder
	if err := gdb.First(&folder, "id = ?", id).Error; err != nil {
		t.Fatalf("load folder %s: %v", id, err)
	}

	return &folder
}

func TestFolderCreatePathInvariants(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	root := mkFolder(t, svc, ctx, "alice", "docs", nil)
	child := mkFolder(t, svc, ctx, "alice", "work", strPtr(root.ID))
	grand := mkFolder(t, svc, ctx, "alice", "reports", strPtr(child.ID))

	// 根级 Path 为空串，子级 Path 为父级祖先链加父级 ID
	if p := loadFolder(t, gdb, root.ID).Path; p != "" {
		t.Fatalf("root path should be empty, got %q", p)
	}

	if p := loadFolder(t, gdb, child.ID).Path; p != root.ID+"/" {
		t.Fatalf("child path = %q, want %q", p, root.ID+"/")
	}

	if p := loadFolder(t, gdb, grand.ID).Path; p != root.ID+"/"+child.ID+"/" {
		t.Fatalf("grandchild path = %q, want %q", p, root.ID+"/"+child.ID+"/")
	}

	// 详情中的祖先链按根到父级排列
	got, err := svc.GetPath(ctx, "alice", grand.ID)
	if err != nil {
		t.Fatalf("get path: %v", err)
	}

	if len(got.Ancestors) != 2 || got.Ancestors[0].ID != root.ID || got.Ancestors[1].ID != child.ID {
		t.Fatalf("unexpected ancestors: %+v", got.Ancestors)
	}

	if got.Ancestors[0].Name != "docs" || got.Ancestors[1].Name != "work" {
		t.Fatalf("ancestor names not resolved: %+v", got.Ancestors)
	}
}

func TestFolderCreateValidation(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")
	seedUser(t, gdb, "bob")

	svc := service.NewFolderService(ctx)

	if _, err := svc.Create(ctx, "alice", &types.CreateFolderRequest{Name: "  "}); err == nil {
		t.Fatal("blank name should fail")
	} else {
		wantKind(t, err, types.KindInvalidArgument)
	}

	root := mkFolder(t, svc, ctx, "alice", "docs", nil)

	// 同级重名冲突
	_, err := svc.Create(ctx, "alice", &types.CreateFolderRequest{Name: "docs"})
	wantKind(t, err, types.KindConflict)

	// 不同父级下允许同名
	if _, err := svc.Create(ctx, "alice", &types.CreateFolderRequest{Name: "docs", ParentID: strPtr(root.ID)}); err != nil {
		t.Fatalf("same name under another parent should succeed: %v", err)
	}

	// 其他用户的同名根级互不影响
	if _, err := svc.Create(ctx, "bob", &types.CreateFolderRequest{Name: "docs"}); err != nil {
		t.Fatalf("other owner same name should succeed: %v", err)
	}

	// 父级必须属于本人
	_, err = svc.Create(ctx, "bob", &types.CreateFolderRequest{Name: "x", ParentID: strPtr(root.ID)})
	wantKind(t, err, types.KindNotFound)
}

func TestFolderListRootsAndChildren(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	a := mkFolder(t, svc, ctx, "alice", "a", nil)
	mkFolder(t, svc, ctx, "alice", "b", nil)
	mkFolder(t, svc, ctx, "alice", "a1", strPtr(a.ID))
	mkFolder(t, svc, ctx, "alice", "a2", strPtr(a.ID))

	roots, err := svc.ListRoots(ctx, "alice")
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	children, err := svc.ListChildren(ctx, "alice", a.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}

	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}

	// 不存在的文件夹
	_, err = svc.ListChildren(ctx, "alice", "missing")
	wantKind(t, err, types.KindNotFound)
}

func TestFolderRename(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	a := mkFolder(t, svc, ctx, "alice", "a", nil)
	mkFolder(t, svc, ctx, "alice", "b", nil)

	// 同名重命名是无操作成功，不产生审计记录
	if _, err := svc.Rename(ctx, "alice", a.ID, &types.RenameFolderRequest{Name: "a"}); err != nil {
		t.Fatalf("no-op rename: %v", err)
	}

	// 与兄弟同名冲突
	_, err := svc.Rename(ctx, "alice", a.ID, &types.RenameFolderRequest{Name: "b"})
	wantKind(t, err, types.KindConflict)

	resp, err := svc.Rename(ctx, "alice", a.ID, &types.RenameFolderRequest{Name: "c"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}

	if resp.Name != "c" {
		t.Fatalf("rename response name = %q", resp.Name)
	}

	// 审计记录异步落库
	waitFor(t, "rename activity", func() bool {
		var n int64
		gdb.Model(&model.Activity{}).
			Where("user_id = ? AND action = ? AND folder_id = ?", "alice", model.ActionRename, a.ID).
			Count(&n)

		return n == 1
	})
}

func TestFolderMoveCascade(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	// docs/work/reports 与独立的 archive
	docs := mkFolder(t, svc, ctx, "alice", "docs", nil)
	work := mkFolder(t, svc, ctx, "alice", "work", strPtr(docs.ID))
	reports := mkFolder(t, svc, ctx, "alice", "reports", strPtr(work.ID))
	archive := mkFolder(t, svc, ctx, "alice", "archive", nil)

	// 移动到自身
	_, err := svc.Move(ctx, "alice", docs.ID, &types.MoveFolderRequest{NewParentID: docs.ID})
	wantKind(t, err, types.KindInvalidArgument)

	// 移动到自身后代（成环）
	_, err = svc.Move(ctx, "alice", docs.ID, &types.MoveFolderRequest{NewParentID: reports.ID})
	wantKind(t, err, types.KindInvalidArgument)

	// work 子树整体移动到 archive 下
	moved, err := svc.Move(ctx, "alice", work.ID, &types.MoveFolderRequest{NewParentID: archive.ID})
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	if moved.Parent == nil || moved.Parent.ID != archive.ID {
		t.Fatalf("moved parent = %+v", moved.Parent)
	}

	// 自身与全部后代的路径均已级联更新
	if p := loadFolder(t, gdb, work.ID).Path; p != archive.ID+"/" {
		t.Fatalf("work path = %q, want %q", p, archive.ID+"/")
	}

	wantReports := archive.ID + "/" + work.ID + "/"
	if p := loadFolder(t, gdb, reports.ID).Path; p != wantReports {
		t.Fatalf("reports path = %q, want %q", p, wantReports)
	}

	if strings.Contains(loadFolder(t, gdb, reports.ID).Path, docs.ID) {
		t.Fatal("old ancestor still present in descendant path")
	}
}

func TestFolderMoveSiblingConflict(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	docs := mkFolder(t, svc, ctx, "alice", "docs", nil)
	mkFolder(t, svc, ctx, "alice", "work", strPtr(docs.ID))
	other := mkFolder(t, svc, ctx, "alice", "work", nil)

	// 目标父级下已有同名文件夹
	_, err := svc.Move(ctx, "alice", other.ID, &types.MoveFolderRequest{NewParentID: docs.ID})
	wantKind(t, err, types.KindConflict)
}

func TestFolderDeleteRecursive(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	docs := mkFolder(t, svc, ctx, "alice", "docs", nil)
	work := mkFolder(t, svc, ctx, "alice", "work", strPtr(docs.ID))
	reports := mkFolder(t, svc, ctx, "alice", "reports", strPtr(work.ID))
	keep := mkFolder(t, svc, ctx, "alice", "keep", nil)

	now := loadFolder(t, gdb, docs.ID).CreatedAt
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, strPtr(docs.ID), now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 10, strPtr(reports.ID), now)
	seedFile(t, gdb, "f3", "alice", "c.png", model.FileTypeImage, 10, strPtr(keep.ID), now)

	resp, err := svc.Delete(ctx, "alice", docs.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if resp.DeletedFolders != 3 {
		t.Fatalf("deleted folders = %d, want 3", resp.DeletedFolders)
	}

	if resp.OrphanedFiles != 2 {
		t.Fatalf("orphaned files = %d, want 2", resp.OrphanedFiles)
	}

	// 子树内文件转为未归档而不是删除
	var f1 model.File
	if err := gdb.First(&f1, "id = ?", "f1").Error; err != nil {
		t.Fatalf("orphaned file should survive: %v", err)
	}

	if f1.FolderID != nil {
		t.Fatalf("orphaned file folder = %v, want nil", *f1.FolderID)
	}

	// 子树外的文件不受影响
	var f3 model.File
	if err := gdb.First(&f3, "id = ?", "f3").Error; err != nil || f3.FolderID == nil {
		t.Fatal("file outside subtree should keep its folder")
	}

	// 子树全部删除，无关文件夹保留
	var remaining int64
	gdb.Model(&model.Folder{}).Where("owner_id = ?", "alice").Count(&remaining)

	if remaining != 1 {
		t.Fatalf("remaining folders = %d, want 1", remaining)
	}
}

func TestFolderBuildTree(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFolderService(ctx)

	docs := mkFolder(t, svc, ctx, "alice", "docs", nil)
	work := mkFolder(t, svc, ctx, "alice", "work", strPtr(docs.ID))
	mkFolder(t, svc, ctx, "alice", "reports", strPtr(work.ID))
	mkFolder(t, svc, ctx, "alice", "misc", nil)

	// 根级森林
	forest, err := svc.BuildTree(ctx, "alice", nil)
	if err != nil {
		t.Fatalf("build forest: %v", err)
	}

	if len(forest.Nodes) != 2 {
		t.Fatalf("forest roots = %d, want 2", len(forest.Nodes))
	}

	byName := map[string]types.FolderTreeNode{}
	for _, n := range forest.Nodes {
		byName[n.Name] = n
	}

	docsNode, ok := byName["docs"]
	if !ok {
		t.Fatal("docs not in forest")
	}

	if len(docsNode.Children) != 1 || docsNode.Children[0].Name != "work" {
		t.Fatalf("docs children = %+v", docsNode.Children)
	}

	if len(docsNode.Children[0].Children) != 1 || docsNode.Children[0].Children[0].Name != "reports" {
		t.Fatalf("work children = %+v", docsNode.Children[0].Children)
	}

	// 指定根时只返回其直接子树
	sub, err := svc.BuildTree(ctx, "alice", strPtr(docs.ID))
	if err != nil {
		t.Fatalf("build subtree: %v", err)
	}

	if len(sub.Nodes) != 1 || sub.Nodes[0].Name != "work" {
		t.Fatalf("subtree nodes = %+v", sub.Nodes)
	}

	// 叶子节点的 children 是空切片而不是 nil（JSON 序列化为 []）
	if sub.Nodes[0].Children[0].Children == nil {
		t.Fatal("leaf children should be an empty slice")
	}

	// 不存在的根
	_, err = svc.BuildTree(ctx, "alice", strPtr("missing"))
	wantKind(t, err, types.KindNotFound)
}
