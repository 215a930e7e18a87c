package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultTokenTTLHours 令牌有效期（小时），默认 7 天.
	DefaultTokenTTLHours = 7 * 24
	// DefaultBcryptCost bcrypt 哈希成本因子.
	DefaultBcryptCost = 10
	// DefaultJWTSecret 仅用于开发环境，生产部署必须覆盖.
	DefaultJWTSecret = "assetvault-dev-secret"
	// DefaultTokenIssuer 令牌签发者标识.
	DefaultTokenIssuer = "assetvault"
)

// AuthConfig 认证配置：JWT 签名与密码哈希参数.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"      rule:"required"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" rule:"min=1"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"     rule:"min=4,max=31"`
	Issuer        string `mapstructure:"issuer"`
}

// GetTokenTTL 返回令牌有效期作为 time.Duration.
func (c *AuthConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// setDefaults 设置认证配置的默认值.
func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl_hours", DefaultTokenTTLHours)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth.issuer", DefaultTokenIssuer)
}
