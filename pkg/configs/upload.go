package configs

import "github.com/spf13/viper"

// DefaultMaxUploadBytes 单次上传大小上限（10 MiB）.
const DefaultMaxUploadBytes = 10 << 20

// UploadConfig 上传限制配置.
type UploadConfig struct {
	// MaxBytes 单个文件的最大字节数，超出在写入任何记录前拒绝.
	MaxBytes int64 `mapstructure:"max_bytes" rule:"min=1"`
}

// setDefaults 设置上传配置的默认值.
func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_bytes", DefaultMaxUploadBytes)
}
