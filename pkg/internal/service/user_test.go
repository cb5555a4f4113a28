package service_test

import (
	"testing"
	"time"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/service"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

func TestUserRegisterAndLogin(t *testing.T) {
	ctx, _ := newTestContext(t)

	svc := service.NewUserService(ctx)

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		FullName: "Alice Liddell",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// 邮箱规范化为小写
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q", user.Email)
	}

	// 用户名或邮箱重复均冲突
	_, err = svc.Register(ctx, &types.RegisterRequest{
		Username: "alice", Email: "other@example.com", FullName: "x", Password: "12345678",
	})
	wantKind(t, err, types.KindConflict)

	_, err = svc.Register(ctx, &types.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", FullName: "x", Password: "12345678",
	})
	wantKind(t, err, types.KindConflict)

	login, err := svc.Login(ctx, &types.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if login.AccessToken == "" || !login.ExpiresAt.After(time.Now()) {
		t.Fatalf("login token missing: %+v", login)
	}

	// 账户不存在与密码错误返回同样的错误文本，避免枚举探测
	_, errMissing := svc.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "x"})
	_, errWrong := svc.Login(ctx, &types.LoginRequest{Email: "alice@example.com", Password: "wrong"})

	wantKind(t, errMissing, types.KindInvalidArgument)
	wantKind(t, errWrong, types.KindInvalidArgument)

	if errMissing.Error() != errWrong.Error() {
		t.Fatalf("login errors should be indistinguishable: %q vs %q", errMissing, errWrong)
	}
}

func TestUserChangePassword(t *testing.T) {
	ctx, _ := newTestContext(t)

	svc := service.NewUserService(ctx)

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "old-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new-password"})
	wantKind(t, err, types.KindInvalidArgument)

	if err := svc.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{OldPassword: "old-password", NewPassword: "new-password"}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(ctx, &types.LoginRequest{Email: "alice@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUserUpdateEmail(t *testing.T) {
	ctx, _ := newTestContext(t)

	svc := service.NewUserService(ctx)

	alice, _ := svc.Register(ctx, &types.RegisterRequest{
		Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "12345678",
	})
	_, _ = svc.Register(ctx, &types.RegisterRequest{
		Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "12345678",
	})

	// 撞上他人邮箱
	_, err := svc.UpdateEmail(ctx, alice.ID, &types.UpdateEmailRequest{Email: "bob@example.com"})
	wantKind(t, err, types.KindConflict)

	// 改回自己的邮箱不算冲突
	if _, err := svc.UpdateEmail(ctx, alice.ID, &types.UpdateEmailRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("self email update: %v", err)
	}

	updated, err := svc.UpdateEmail(ctx, alice.ID, &types.UpdateEmailRequest{Email: "New@Example.com"})
	if err != nil || updated.Email != "new@example.com" {
		t.Fatalf("update email: %v %+v", err, updated)
	}
}

func TestUserReconcileStorageUsage(t *testing.T) {
	ctx, gdb := newTestContext(t)
	seedUser(t, gdb, "alice")
	seedUser(t, gdb, "bob")

	now := time.Now()
	seedFile(t, gdb, "f1", "alice", "a.png", model.FileTypeImage, 100, nil, now)
	seedFile(t, gdb, "f2", "alice", "b.png", model.FileTypeImage, 50, nil, now)

	// alice 的计数漂移，bob 的计数正确（无文件，用量 0）
	gdb.Model(&model.User{}).Where("id = ?", "alice").Update("storage_used", 999)

	svc := service.NewUserService(ctx)

	n, err := svc.ReconcileStorageUsage(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if n != 1 {
		t.Fatalf("corrected = %d, want 1", n)
	}

	var alice model.User
	gdb.First(&alice, "id = ?", "alice")

	if alice.StorageUsed != 150 {
		t.Fatalf("storage used = %d, want 150", alice.StorageUsed)
	}
}
