package service_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yeisme/cloudvault/pkg/configs"
	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage"
	dbc "github.com/yeisme/cloudvault/pkg/internal/storage/db"
	s3c "github.com/yeisme/cloudvault/pkg/internal/storage/s3"
	"github.com/yeisme/cloudvault/pkg/internal/types"
)

// failTransport 让所有对象存储请求立即失败且不触发重试退避.
type failTransport struct{}

func (failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("blob store unreachable")
}

// countingTransport 在失败之余统计对象删除请求次数.
type countingTransport struct {
	deletes atomic.Int64
}

func (ct *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodDelete {
		ct.deletes.Add(1)
	}

	return nil, errors.New("blob store unreachable")
}

// newTestContext 构造测试用依赖：临时 sqlite 库 + 请求必然失败的对象存储客户端.
// minio 构造函数不联网，预签名也在本地完成；真正的网络调用各用例自行断言失败路径.
func newTestContext(t *testing.T) (context.Context, *gorm.DB) {
	t.Helper()

	return newTestContextWith(t, failTransport{})
}

// newTestContextWith 同 newTestContext，但允许注入自定义对象存储传输层.
func newTestContextWith(t *testing.T, rt http.RoundTripper) (context.Context, *gorm.DB) {
	t.Helper()

	// 测试桶与认证参数写入全局配置，避免空桶名导致的参数校验错误
	cfg := configs.GetConfig()
	cfg.S3.BucketName = "cloudvault-test"
	cfg.S3.Endpoint = "127.0.0.1:1"
	cfg.Auth.Enabled = true
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "cloudvault"
	cfg.Auth.TokenTTL = 3600

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cloudvault.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Folder{},
		&model.File{},
		&model.Tag{},
		&model.Activity{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mc, err := minio.New("127.0.0.1:1", &minio.Options{
		Creds:     credentials.NewStaticV4("test", "test", ""),
		Transport: rt,
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}

	mgr := &storage.Manager{
		DB: &dbc.Client{DB: gdb},
		S3: &s3c.Client{Client: mc},
	}

	return ctxPkg.WithStorageManager(context.Background(), mgr), gdb
}

// seedUser 预置一个用户.
func seedUser(t *testing.T, gdb *gorm.DB, id string) {
	t.Helper()

	user := model.User{
		ID:       id,
		Username: id,
		Email:    id + "@example.com",
		FullName: id,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

// seedFile 直接落一条文件元数据，绕过对象存储.
func seedFile(t *testing.T, gdb *gorm.DB, id, owner, name, fileType string, size int64, folderID *string, created time.Time) {
	t.Helper()

	file := model.File{
		ID:        id,
		Name:      name,
		Type:      fileType,
		Size:      size,
		OwnerID:   owner,
		FolderID:  folderID,
		ObjectKey: owner + "/" + id,
		URL:       "http://127.0.0.1:1/cloudvault-test/" + owner + "/" + id,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := gdb.Create(&file).Error; err != nil {
		t.Fatalf("seed file %s: %v", id, err)
	}
}

// wantKind 断言错误属于指定类别.
func wantKind(t *testing.T, err error, kind types.Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}

	if got := types.KindOf(err); got != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, got, err)
	}
}

// waitFor 轮询等待异步条件成立（审计记录是 fire-and-forget 落库）.
func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s", desc)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
