package configs

import "github.com/spf13/viper"

const (
	DefaultMetricsEnabled = true  // 默认启用监控
	DefaultRuntimeMetrics = true  // 默认收集运行时指标
	DefaultPprof          = false // 默认关闭pprof
)

// MetricsConfig 监控配置.
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	RuntimeMetrics bool `mapstructure:"runtime_metrics"`
	Pprof          bool `mapstructure:"pprof"`
}

// setDefaults 设置监控配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.runtime_metrics", DefaultRuntimeMetrics)
	v.SetDefault("metrics.pprof", DefaultPprof)
}
