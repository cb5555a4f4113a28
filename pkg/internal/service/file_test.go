package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

func TestFileUploadFailedLeavesNoMetadata(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFileService(ctx)

	// 对象存储端点不可达，写入失败时不得产生任何元数据
	_, err := svc.Upload(ctx, "alice",
		&types.UploadFileRequest{Name: "a.png", Type: model.FileTypeImage},
		strings.NewReader("bytes"), 5, "image/png")
	wantKind(t, err, types.KindUploadFailed)

	var n int64
	gdb.Model(&model.File{}).Count(&n)

	if n != 0 {
		t.Fatalf("file rows = %d, want 0", n)
	}
}

func TestFileUploadRejectsUnknownType(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewFileService(ctx)

	_, err := svc.Upload(ctx, "alice",
		&types.UploadFileRequest{Name: "a.exe", Type: "binary"},
		strings.NewReader("bytes"), 5, "application/octet-stream")
	wantKind(t, err, types.KindInvalidArgument)
}

func TestFileGetUpdateAndIdentity(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 20, nil, now)

	svc := service.NewFileService(ctx)

	got, err := svc.GetByID(ctx, "alice", "f1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Name != "a.png" || got.Size != 10 {
		t.Fatalf("unexpected file: %+v", got)
	}

	// 其他用户不可见
	_, err = svc.GetByID(ctx, "bob", "f1")
	wantKind(t, err, types.KindNotFound)

	// 重命名撞上同文件夹下的现有文件
	_, err = svc.Update(ctx, "alice", "f1", &types.UpdateFileRequest{Name: "b.png", Tags: []string{"x"}})
	wantKind(t, err, types.KindConflict)

	// 重命名并替换标签
	updated, err := svc.Update(ctx, "alice", "f1", &types.UpdateFileRequest{Name: "c.png", Tags: []string{"photos", "2026"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "c.png" || len(updated.Tags) != 2 {
		t.Fatalf("updated = %+v", updated)
	}

	// 标签全量替换
	replaced, err := svc.Update(ctx, "alice", "f1", &types.UpdateFileRequest{Name: "c.png", Tags: []string{"only"}})
	if err != nil {
		t.Fatalf("replace tags: %v", err)
	}

	if len(replaced.Tags) != 1 || replaced.Tags[0] != "only" {
		t.Fatalf("replaced tags = %v", replaced.Tags)
	}
}

func TestFileListAsymmetry(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	folderSvc := service.NewFolderService(ctx)
	empty := mkFolder(t, folderSvc, ctx, "alice", "empty", nil)
	filled := mkFolder(t, folderSvc, ctx, "alice", "filled", nil)

	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, strPtr(filled.ID), time.Now())

	svc := service.NewFileService(ctx)

	// 按文件夹列出：空结果视为 NotFound
	_, err := svc.ListByFolder(ctx, "alice", empty.ID)
	wantKind(t, err, types.KindNotFound)

	files, err := svc.ListByFolder(ctx, "alice", filled.ID)
	if err != nil || len(files) != 1 {
		t.Fatalf("list by folder: %v (%d)", err, len(files))
	}

	// 按用户列出：空结果是成功
	out, err := svc.ListByOwner(ctx, "bob")
	if err != nil {
		t.Fatalf("list by owner should succeed on empty: %v", err)
	}

	if len(out) != 0 {
		t.Fatalf("expected empty, got %d", len(out))
	}
}

func TestFileSearch(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "Vacation-Photo.png", model.FileTypeImage, 10, nil, now)
	seedFile(t, gdb, "f2", "alice", "budget.xlsx", model.FileTypeDocument, 20, nil, now)

	svc := service.NewFileService(ctx)

	// 大小写不敏感子串匹配
	files, err := svc.SearchByName(ctx, "alice", "photo")
	if err != nil || len(files) != 1 || files[0].ID != "f1" {
		t.Fatalf("search by name: %v %+v", err, files)
	}

	// 零匹配视为 NotFound
	_, err = svc.SearchByName(ctx, "alice", "nothing")
	wantKind(t, err, types.KindNotFound)

	_, err = svc.SearchByName(ctx, "alice", " ")
	wantKind(t, err, types.KindInvalidArgument)

	// 标签搜索经由关联表
	if _, err := svc.AddTags(ctx, "alice", "f2", &types.FileTagsRequest{Tags: []string{"finance"}}); err != nil {
		t.Fatalf("add tags: %v", err)
	}

	tagged, err := svc.SearchByTag(ctx, "alice", "fin")
	if err != nil || len(tagged) != 1 || tagged[0].ID != "f2" {
		t.Fatalf("search by tag: %v %+v", err, tagged)
	}

	_, err = svc.SearchByTag(ctx, "alice", "missing")
	wantKind(t, err, types.KindNotFound)
}

func TestFileFilters(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 100, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.mp4", model.FileTypeVideo, 500, nil, now)
	seedFile(t, gdb, "f3", "alice", "c.pdf", model.FileTypeDocument, 300, nil, now)
	seedFile(t, gdb, "f4", "alice", "empty.txt", model.FileTypeDocument, 0, nil, now)

	svc := service.NewFileService(ctx)

	// 类型过滤：空结果是成功
	videos, err := svc.FilterByType(ctx, "alice", model.FileTypeVideo)
	if err != nil || len(videos) != 1 {
		t.Fatalf("filter by type: %v (%d)", err, len(videos))
	}

	docs, err := svc.FilterByType(ctx, "bob", model.FileTypeDocument)
	if err != nil || len(docs) != 0 {
		t.Fatalf("filter by type empty: %v (%d)", err, len(docs))
	}

	_, err = svc.FilterByType(ctx, "alice", "archive")
	wantKind(t, err, types.KindInvalidArgument)

	// 大小闭区间，大的在前
	ranged, err := svc.FilterBySizeRange(ctx, "alice", &types.SizeRangeRequest{MinSize: int64Ptr(100), MaxSize: int64Ptr(300)})
	if err != nil {
		t.Fatalf("size range: %v", err)
	}

	if len(ranged) != 2 || ranged[0].Size != 300 || ranged[1].Size != 100 {
		t.Fatalf("size range result: %+v", ranged)
	}

	// 0..0 闭区间只命中零字节文件
	zeros, err := svc.FilterBySizeRange(ctx, "alice", &types.SizeRangeRequest{MinSize: int64Ptr(0), MaxSize: int64Ptr(0)})
	if err != nil {
		t.Fatalf("zero size range: %v", err)
	}

	if len(zeros) != 1 || zeros[0].ID != "f4" || zeros[0].Size != 0 {
		t.Fatalf("zero size range result: %+v", zeros)
	}

	_, err = svc.FilterBySizeRange(ctx, "alice", &types.SizeRangeRequest{MinSize: int64Ptr(300), MaxSize: int64Ptr(100)})
	wantKind(t, err, types.KindInvalidArgument)

	_, err = svc.FilterBySizeRange(ctx, "alice", &types.SizeRangeRequest{MinSize: int64Ptr(-1), MaxSize: int64Ptr(100)})
	wantKind(t, err, types.KindInvalidArgument)
}

func TestFileDeleteAdjustsUsage(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	gdb.Model(&model.User{}).Where("id = ?", "alice").Update("storage_used", 30)

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 20, nil, now)

	svc := service.NewFileService(ctx)

	if err := svc.Delete(ctx, "alice", "f1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var user model.User
	gdb.First(&user, "id = ?", "alice")

	if user.StorageUsed != 20 {
		t.Fatalf("storage used = %d, want 20", user.StorageUsed)
	}

	_, err := svc.GetByID(ctx, "alice", "f1")
	wantKind(t, err, types.KindNotFound)
}

func TestFileBulkDelete(t *testing.T) {
	ct := &countingTransport{}
	ctx, gdb := newTestContextWith(t, ct)
	seedUser(t, gdb, "alice")

	gdb.Model(&model.User{}).Where("id = ?", "alice").Update("storage_used", 60)

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 20, nil, now)
	seedFile(t, gdb, "f3", "alice", "c.png", model.FileTypeImage, 30, nil, now)

	svc := service.NewFileService(ctx)

	// 不存在的 ID 跳过而不报错
	resp, err := svc.BulkDelete(ctx, "alice", &types.BulkDeleteRequest{FileIDs: []string{"f1", "f2", "missing"}})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}

	if resp.Requested != 3 || resp.Deleted != 2 {
		t.Fatalf("bulk delete = %+v", resp)
	}

	// 对象清理只对命中的两个文件各发起一次删除
	if n := ct.deletes.Load(); n != 2 {
		t.Fatalf("object delete calls = %d, want 2", n)
	}

	var user model.User
	gdb.First(&user, "id = ?", "alice")

	if user.StorageUsed != 30 {
		t.Fatalf("storage used = %d, want 30", user.StorageUsed)
	}

	// 全部未命中视为 NotFound
	_, err = svc.BulkDelete(ctx, "alice", &types.BulkDeleteRequest{FileIDs: []string{"missing"}})
	wantKind(t, err, types.KindNotFound)

	_, err = svc.BulkDelete(ctx, "alice", &types.BulkDeleteRequest{})
	wantKind(t, err, types.KindInvalidArgument)
}

func TestFileBulkMove(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	folderSvc := service.NewFolderService(ctx)
	target := mkFolder(t, folderSvc, ctx, "alice", "target", nil)

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 20, nil, now)

	svc := service.NewFileService(ctx)

	// 目标文件夹必须存在
	_, err := svc.BulkMove(ctx, "alice", &types.BulkMoveRequest{FileIDs: []string{"f1"}, NewFolderID: "missing"})
	wantKind(t, err, types.KindNotFound)

	// 未命中的 ID 跳过，不影响其余文件的移动
	resp, err := svc.BulkMove(ctx, "alice", &types.BulkMoveRequest{FileIDs: []string{"f1", "f2", "ghost"}, NewFolderID: target.ID})
	if err != nil {
		t.Fatalf("bulk move: %v", err)
	}

	if resp.Moved != 2 {
		t.Fatalf("moved = %d, want 2", resp.Moved)
	}

	var f1 model.File
	gdb.First(&f1, "id = ?", "f1")

	if f1.FolderID == nil || *f1.FolderID != target.ID {
		t.Fatalf("f1 folder = %v", f1.FolderID)
	}

	// 审计只记实际移动的两个文件
	waitFor(t, "move activities", func() bool {
		var n int64
		gdb.Model(&model.Activity{}).
			Where("action = ? AND file_id IN ?", model.ActionMove, []string{"f1", "f2"}).
			Count(&n)

		return n == 2
	})

	var ghosted int64
	gdb.Model(&model.Activity{}).Where("file_id = ?", "ghost").Count(&ghosted)

	if ghosted != 0 {
		t.Fatalf("activities recorded for unmatched id: %d", ghosted)
	}

	// 零行变更视为 NoOp
	_, err = svc.BulkMove(ctx, "alice", &types.BulkMoveRequest{FileIDs: []string{"missing"}, NewFolderID: target.ID})
	wantKind(t, err, types.KindNoOp)
}

func TestFileTagUnionSemantics(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, time.Now())

	svc := service.NewFileService(ctx)

	// 添加是并集语义，重复添加不报错也不重复
	if _, err := svc.AddTags(ctx, "alice", "f1", &types.FileTagsRequest{Tags: []string{"x", "y"}}); err != nil {
		t.Fatalf("add tags: %v", err)
	}

	resp, err := svc.AddTags(ctx, "alice", "f1", &types.FileTagsRequest{Tags: []string{"y", "z"}})
	if err != nil {
		t.Fatalf("add tags again: %v", err)
	}

	if len(resp.Tags) != 3 {
		t.Fatalf("tags after union = %v", resp.Tags)
	}

	// 移除未关联的名称忽略
	resp, err = svc.RemoveTags(ctx, "alice", "f1", &types.FileTagsRequest{Tags: []string{"y", "unknown"}})
	if err != nil {
		t.Fatalf("remove tags: %v", err)
	}

	if len(resp.Tags) != 2 {
		t.Fatalf("tags after remove = %v", resp.Tags)
	}
}

func TestStats(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	folderSvc := service.NewFolderService(ctx)
	docs := mkFolder(t, folderSvc, ctx, "alice", "docs", nil)

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 100, strPtr(docs.ID), now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 200, nil, now)
	seedFile(t, gdb, "f3", "alice", "c.pdf", model.FileTypeDocument, 50, nil, now)

	gdb.Model(&model.User{}).Where("id = ?", "alice").
		Updates(map[string]any{"storage_used": 350, "storage_quota": 1000})

	svc := service.NewStatsService(ctx)

	sum, err := svc.Summary(ctx, "alice")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	want := types.StatsSummary{
		TotalFiles:   3,
		TotalFolders: 1,
		TotalSize:    350,
		UnfiledFiles: 2,
		StorageUsed:  350,
		StorageQuota: 1000,
	}
	if sum != want {
		t.Fatalf("summary = %+v, want %+v", sum, want)
	}

	byType, err := svc.ByType(ctx, "alice")
	if err != nil {
		t.Fatalf("by type: %v", err)
	}

	if len(byType) != 2 || byType[0].Type != model.FileTypeImage || byType[0].Count != 2 || byType[0].Size != 300 {
		t.Fatalf("by type = %+v", byType)
	}
}
