// Package s3 封装对象存储操作：写入字节、幂等删除、预签名下载.
// 对上层而言对象键是不透明句柄，仅用于后续寻址同一对象.
package s3

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oklog/ulid"

	"github.com/yeisme/cloudvault/pkg/configs"
	nlog "github.com/yeisme/cloudvault/pkg/log"
)

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client
}

var keyEntropy = ulid.Monotonic(crand.Reader, 0)

// New 初始化 MinIO 客户端，若 bucket 不存在则尝试创建.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("cloudvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	return &Client{Client: cli}, nil
}

// PutResult 写入结果：不透明句柄与公开引用，二者缺一视为失败.
type PutResult struct {
	ObjectKey string
	URL       string
	Size      int64
	ETag      string
}

// Put 将字节写入对象存储并返回句柄与公开引用.
// 对象键形如 <owner>/<ulid><ext>，扩展名沿用原始文件名.
func (c *Client) Put(ctx context.Context, owner, fileName string, reader io.Reader, size int64, contentType string) (*PutResult, error) {
	cfg := configs.GetConfig().S3

	id := ulid.MustNew(ulid.Timestamp(time.Now()), keyEntropy)
	objectKey := fmt.Sprintf("%s/%s%s", owner, strings.ToLower(id.String()), path.Ext(fileName))

	info, err := c.PutObject(ctx, cfg.BucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return &PutResult{
		ObjectKey: objectKey,
		URL:       fmt.Sprintf("%s/%s/%s", cfg.GetEndpointURL(), cfg.BucketName, objectKey),
		Size:      info.Size,
		ETag:      info.ETag,
	}, nil
}

// Remove 删除对象. 幂等：删除不存在的句柄不报错.
func (c *Client) Remove(ctx context.Context, objectKey string) error {
	cfg := configs.GetConfig().S3

	err := c.RemoveObject(ctx, cfg.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}

		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}

	return nil
}

// PresignGet 生成下载用预签名 URL，响应头中携带原始文件名.
func (c *Client) PresignGet(ctx context.Context, objectKey, fileName string, expiry time.Duration) (*url.URL, error) {
	cfg := configs.GetConfig().S3

	params := url.Values{}
	if fileName != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}

	u, err := c.PresignedGetObject(ctx, cfg.BucketName, objectKey, expiry, params)
	if err != nil {
		return nil, fmt.Errorf("presign object %s: %w", objectKey, err)
	}

	return u, nil
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close 关闭 S3 客户端连接（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}
