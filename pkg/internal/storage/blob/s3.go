package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/assetvault/pkg/configs"
	alog "github.com/yeisme/assetvault/pkg/log"
)

// S3Store 基于 MinIO 客户端的对象存储后端.
type S3Store struct {
	cli    *minio.Client
	bucket string
}

// NewS3Store 初始化 MinIO 客户端，若 bucket 不存在则创建.
func NewS3Store(ctx context.Context, cfg *configs.StorageConfig) (*S3Store, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("assetvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}

		alog.Logger().Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	alog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	return &S3Store{cli: cli, bucket: cfg.BucketName}, nil
}

// Put 实现 Store 接口. etag 由对象存储计算.
func (s *S3Store) Put(ctx context.Context, originalName string, r io.Reader, size int64) (string, string, error) {
	key := newKey(originalName)

	info, err := s.cli.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}

	return key, info.ETag, nil
}

// Get 实现 Store 接口.
func (s *S3Store) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := s.cli.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	// GetObject 是惰性的，Stat 触发实际请求并暴露 not-found
	info, err := obj.Stat()
	if err != nil {
		obj.Close()

		return nil, fmt.Errorf("stat object %s: %w", key, err)
	}

	return &Object{Reader: obj, Size: info.Size}, nil
}

// Ping 实现 Store 接口：确认 bucket 仍可访问.
func (s *S3Store) Ping(ctx context.Context) error {
	exists, err := s.cli.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}

	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	return nil
}

// Delete 实现 Store 接口.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := s.cli.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}
