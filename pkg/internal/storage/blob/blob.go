// Package blob 抽象文件内容存储，支持本地磁盘和 S3/MinIO 两种后端.
// 数据库只保存对象键，实际字节由这里负责.
package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/yeisme/assetvault/pkg/configs"
)

// Object 从存储中读出的对象：内容流和大小.
type Object struct {
	Reader io.ReadCloser
	Size   int64
}

// Store 文件内容存储接口.
type Store interface {
	// Put 写入一个新对象，返回生成的对象键和内容 etag.
	// key 由实现生成，保证全局唯一；originalName 仅用于保留扩展名.
	Put(ctx context.Context, originalName string, r io.Reader, size int64) (key, etag string, err error)
	// Get 按键读取对象，对象不存在时返回错误.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete 按键删除对象. 删除不存在的键不报错.
	Delete(ctx context.Context, key string) error
	// Ping 探测后端是否可用，用于健康检查.
	Ping(ctx context.Context) error
}

// New 按配置创建 blob 存储后端.
func New(ctx context.Context, cfg *configs.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case configs.StorageFS:
		return NewFSStore(cfg.Root)
	case configs.StorageS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
