package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

func TestActivityLogValidation(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewActivityService(ctx)

	// 未知动作
	_, err := svc.Log(ctx, "alice", &types.LogActivityRequest{Action: "peek", FileID: strPtr("f1")})
	wantKind(t, err, types.KindInvalidArgument)

	// file 与 folder 必须且只能提供一个
	_, err = svc.Log(ctx, "alice", &types.LogActivityRequest{Action: model.ActionUpload})
	wantKind(t, err, types.KindInvalidArgument)

	_, err = svc.Log(ctx, "alice", &types.LogActivityRequest{
		Action:   model.ActionUpload,
		FileID:   strPtr("f1"),
		FolderID: strPtr("d1"),
	})
	wantKind(t, err, types.KindInvalidArgument)

	resp, err := svc.Log(ctx, "alice", &types.LogActivityRequest{Action: model.ActionUpload, FileID: strPtr("f1")})
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	if resp.Action != model.ActionUpload || resp.FileID == nil || *resp.FileID != "f1" {
		t.Fatalf("logged = %+v", resp)
	}
}

func TestActivityListAsymmetry(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	svc := service.NewActivityService(ctx)

	// 全量列表：空结果视为 NotFound
	_, err := svc.ListAll(ctx)
	wantKind(t, err, types.KindNotFound)

	// 细分查询：空结果是成功
	byUser, err := svc.ListByUser(ctx, "alice")
	if err != nil || len(byUser) != 0 {
		t.Fatalf("list by user empty: %v (%d)", err, len(byUser))
	}

	byFile, err := svc.ListByFile(ctx, "f1")
	if err != nil || len(byFile) != 0 {
		t.Fatalf("list by file empty: %v (%d)", err, len(byFile))
	}

	_, _ = svc.Log(ctx, "alice", &types.LogActivityRequest{Action: model.ActionUpload, FileID: strPtr("f1")})
	_, _ = svc.Log(ctx, "alice", &types.LogActivityRequest{Action: model.ActionDelete, FolderID: strPtr("d1")})

	all, err := svc.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list all: %v (%d)", err, len(all))
	}

	byFolder, err := svc.ListByFolder(ctx, "d1")
	if err != nil || len(byFolder) != 1 {
		t.Fatalf("list by folder: %v (%d)", err, len(byFolder))
	}
}

func TestActivityListRecent(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	// 直接落库以控制时间戳
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		activity := model.Activity{
			ID:        fmt.Sprintf("a%02d", i),
			UserID:    "alice",
			Action:    model.ActionUpload,
			FileID:    strPtr("f1"),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := gdb.Create(&activity).Error; err != nil {
			t.Fatalf("seed activity: %v", err)
		}
	}

	svc := service.NewActivityService(ctx)

	// limit <= 0 取默认 10 条，最新的在前
	recent, err := svc.ListRecent(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}

	if len(recent) != service.DefaultRecentActivities {
		t.Fatalf("recent = %d, want %d", len(recent), service.DefaultRecentActivities)
	}

	if recent[0].CreatedAt.Before(recent[len(recent)-1].CreatedAt) {
		t.Fatal("recent should be newest first")
	}

	three, err := svc.ListRecent(ctx, "alice", 3)
	if err != nil || len(three) != 3 {
		t.Fatalf("recent 3: %v (%d)", err, len(three))
	}
}

func TestActivityPruneBefore(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")

	now := time.Now()
	old := model.Activity{ID: "old", UserID: "alice", Action: model.ActionUpload, FileID: strPtr("f1"), CreatedAt: now.Add(-48 * time.Hour)}
	fresh := model.Activity{ID: "fresh", UserID: "alice", Action: model.ActionUpload, FileID: strPtr("f1"), CreatedAt: now}

	gdb.Create(&old)
	gdb.Create(&fresh)

	svc := service.NewActivityService(ctx)

	n, err := svc.PruneBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}

	if n != 1 {
		t.Fatalf("pruned = %d, want 1", n)
	}

	var remaining int64
	gdb.Model(&model.Activity{}).Count(&remaining)

	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
}
