// Package storage 聚合持久化资源：关系型数据库（元数据）、S3 对象存储（文件字节）、
// KV 缓存与消息队列.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	s3Client := mgr.GetS3Client()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/cloudvault/pkg/internal/model"
	dbc "github.com/yeisme/cloudvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/cloudvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/cloudvault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/cloudvault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/cloudvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	S3 *s3c.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
// DB 与 S3 是硬依赖，初始化失败直接返回错误；KV 与 MQ 失败仅降级（记日志）.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// 模型迁移
		if e := dbi.AutoMigrate(
			&model.User{},
			&model.Folder{},
			&model.File{},
			&model.Tag{},
			&model.Activity{},
		); e != nil {
			err = e
			return
		}

		// S3
		s3i, e := s3c.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.S3 = s3i

		// KV（可选）
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("kv init failed, cache disabled")
		} else {
			m.KV = kvi
		}

		// MQ（可选）
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("mq init failed, events disabled")
		} else {
			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// Close 释放所有存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	if m.S3 != nil {
		if e := m.S3.Close(); e != nil {
			err = e
		}
	}

	return err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}
