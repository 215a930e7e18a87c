package configs

import "github.com/spf13/viper"

const (
	DefaultMailEnabled = false            // 默认关闭邮件发送（开发环境无 SMTP）
	DefaultMailHost    = "smtp.gmail.com" // 默认SMTP主机
	DefaultMailPort    = 587              // 默认SMTP端口
	DefaultMailFrom    = "Asset Vault <noreply@assetvault.local>"
)

// MailConfig 邮件通知配置. 邮件是尽力而为的副作用：发送失败只记录日志，
// 绝不影响触发它的主操作.
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" rule:"min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// DashboardURL 邮件正文中指向前端的链接.
	DashboardURL string `mapstructure:"dashboard_url"`
}

// setDefaults 设置邮件配置的默认值.
func (c *MailConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mail.enabled", DefaultMailEnabled)
	v.SetDefault("mail.host", DefaultMailHost)
	v.SetDefault("mail.port", DefaultMailPort)
	v.SetDefault("mail.from", DefaultMailFrom)
	v.SetDefault("mail.dashboard_url", "http://localhost:3000/dashboard")
}
