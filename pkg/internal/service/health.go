package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/assetvault/pkg/internal/storage/blob"
)

// HealthService 健康检查：探测数据库连接和 blob 存储后端.
type HealthService struct {
	db   *gorm.DB
	blob blob.Store
}

// NewHealthService 创建健康检查服务.
func NewHealthService(db *gorm.DB, store blob.Store) *HealthService {
	return &HealthService{db: db, blob: store}
}

// Check 依次探测数据库和 blob 存储，任一不可用即返回错误.
func (s *HealthService) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	if err := s.blob.Ping(ctx); err != nil {
		return fmt.Errorf("blob ping: %w", err)
	}

	return nil
}
