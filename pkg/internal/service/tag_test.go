package service_test

import (
	"testing"
	"time"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

func TestTagCRUD(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")
	seedUser(t, gdb, "bob")

	svc := service.NewTagService(ctx)

	created, err := svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "photos"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 同一用户下名称唯一
	_, err = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "photos"})
	wantKind(t, err, types.KindConflict)

	// 不同用户维护独立命名空间
	if _, err := svc.Create(ctx, "bob", &types.CreateTagRequest{Name: "photos"}); err != nil {
		t.Fatalf("other owner same name: %v", err)
	}

	_, err = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "  "})
	wantKind(t, err, types.KindInvalidArgument)

	got, err := svc.GetByID(ctx, "alice", created.ID)
	if err != nil || got.Name != "photos" {
		t.Fatalf("get: %v %+v", err, got)
	}

	// 跨用户不可见
	_, err = svc.GetByID(ctx, "bob", created.ID)
	wantKind(t, err, types.KindNotFound)
}

func TestTagUpdate(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewTagService(ctx)

	a, _ := svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "a"})
	_, _ = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "b"})

	// 同名更新是无操作成功
	if _, err := svc.Update(ctx, "alice", a.ID, &types.UpdateTagRequest{Name: "a"}); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	_, err := svc.Update(ctx, "alice", a.ID, &types.UpdateTagRequest{Name: "b"})
	wantKind(t, err, types.KindConflict)

	renamed, err := svc.Update(ctx, "alice", a.ID, &types.UpdateTagRequest{Name: "c"})
	if err != nil || renamed.Name != "c" {
		t.Fatalf("rename: %v %+v", err, renamed)
	}
}

func TestTagListAndSearch(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewTagService(ctx)

	_, _ = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "Finance"})
	_, _ = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "family"})
	_, _ = svc.Create(ctx, "alice", &types.CreateTagRequest{Name: "work"})

	all, err := svc.ListByUser(ctx, "alice")
	if err != nil || len(all) != 3 {
		t.Fatalf("list: %v (%d)", err, len(all))
	}

	// 大小写不敏感子串匹配，空结果是成功
	hits, err := svc.SearchByName(ctx, "alice", "fa")
	if err != nil || len(hits) != 1 || hits[0].Name != "family" {
		t.Fatalf("search: %v %+v", err, hits)
	}

	none, err := svc.SearchByName(ctx, "alice", "zzz")
	if err != nil || len(none) != 0 {
		t.Fatalf("empty search should succeed: %v (%d)", err, len(none))
	}
}

func TestTagDeleteDetachesFiles(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 10, nil, time.Now())

	fileSvc := service.NewFileService(ctx)
	if _, err := fileSvc.AddTags(ctx, "alice", "f1", &types.FileTagsRequest{Tags: []string{"photos"}}); err != nil {
		t.Fatalf("add tags: %v", err)
	}

	tagSvc := service.NewTagService(ctx)

	tags, _ := tagSvc.ListByUser(ctx, "alice")
	if len(tags) != 1 {
		t.Fatalf("expected implicit tag, got %d", len(tags))
	}

	if err := tagSvc.Delete(ctx, "alice", tags[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// 文件保留，标签关联清除
	resp, err := fileSvc.GetByID(ctx, "alice", "f1")
	if err != nil {
		t.Fatalf("get file: %v", err)
	}

	if len(resp.Tags) != 0 {
		t.Fatalf("tags should be detached: %v", resp.Tags)
	}

	var n int64
	gdb.Table("file_tags").Count(&n)

	if n != 0 {
		t.Fatalf("file_tags rows = %d, want 0", n)
	}
}
