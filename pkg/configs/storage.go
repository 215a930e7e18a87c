package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// StorageDriver 文件存储后端类型.
type StorageDriver string

const (
	// StorageFS 本地文件系统存储.
	StorageFS StorageDriver = "fs"
	// StorageS3 S3/MinIO 对象存储.
	StorageS3 StorageDriver = "s3"
)

const (
	DefaultStorageDriver     = StorageFS        // 默认使用本地磁盘
	DefaultStorageRoot       = "uploads"        // 本地存储根目录
	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3BucketName      = "assetvault"     // 默认存储桶名称
	DefaultS3Region          = "us-east-1"      // 默认区域
)

// StorageConfig 文件内容（blob）存储配置，支持本地磁盘和 S3/MinIO 两种后端.
type StorageConfig struct {
	Driver StorageDriver `mapstructure:"driver" rule:"oneof=fs s3"`
	// Root 本地磁盘存储根目录，仅 fs 后端使用.
	Root string `mapstructure:"root"`
	// 以下为 S3/MinIO 后端配置.
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL 获取完整的S3端点URL.
func (c *StorageConfig) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置存储配置的默认值.
func (c *StorageConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DefaultStorageDriver)
	v.SetDefault("storage.root", DefaultStorageRoot)
	v.SetDefault("storage.endpoint", DefaultS3Endpoint)
	v.SetDefault("storage.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("storage.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("storage.use_ssl", DefaultS3UseSSL)
	v.SetDefault("storage.bucket_name", DefaultS3BucketName)
	v.SetDefault("storage.region", DefaultS3Region)
}
