// Package storage 聚合持久化资源：关系数据库、blob 存储和消息总线.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx, configs.GetConfig())
//	if err != nil {
//	    // 处理错误
//	}
//
//	db := mgr.GetDBClient()
//	store := mgr.GetBlobStore()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/assetvault/pkg/configs"
	"github.com/yeisme/assetvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/assetvault/pkg/internal/storage/db"
	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	alog "github.com/yeisme/assetvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB   *dbc.Client
	Blob blob.Store
	MQ   *mq.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// New 按给定配置创建存储管理器. 测试可以用它绕开全局配置.
func New(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	dbi, err := dbc.New(ctx, &cfg.DB, cfg.Metrics.Enabled)
	if err != nil {
		return nil, err
	}

	store, err := blob.New(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &Manager{
		DB:   dbi,
		Blob: store,
		MQ:   mq.New(),
	}, nil
}

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
func Init(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		var m *Manager

		m, err = New(ctx, cfg)
		if err != nil {
			return
		}

		mgr = m

		alog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetBlobStore 获取 blob 存储.
func (m *Manager) GetBlobStore() blob.Store {
	return m.Blob
}

// GetMQClient 获取消息总线客户端.
func (m *Manager) GetMQClient() *mq.Client {
	return m.MQ
}

// Close 释放所有存储资源.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	if m.MQ != nil {
		if err := m.MQ.Close(); err != nil {
			return err
		}
	}

	if m.DB != nil {
		if sqlDB, err := m.DB.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}

	return nil
}
