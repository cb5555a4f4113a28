package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAuthTokenTTL = 24 * 60 * 60 // 访问令牌有效期（秒），默认 24 小时
	DefaultAuthIssuer   = "cloudvault"
)

// AuthConfig JWT 身份认证配置.
type AuthConfig struct {
	Enabled   bool     `mapstructure:"enabled"`    // 开启认证校验
	JWTSecret string   `mapstructure:"jwt_secret"` // HMAC 签名密钥
	Issuer    string   `mapstructure:"issuer"`     // 令牌签发方
	TokenTTL  int      `mapstructure:"token_ttl"`  // 访问令牌有效期（秒）
	SkipPaths []string `mapstructure:"skip_paths"` // 跳过认证的路径前缀（如 /metrics、/api/v1/health）
	// DevAllowQuery 开发模式允许用 ?user= 兜底，便于本地调试
	DevAllowQuery bool `mapstructure:"dev_allow_query"`
}

// GetTokenTTL 返回访问令牌有效期.
func (c *AuthConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultAuthTokenTTL * time.Second
	}

	return time.Duration(c.TokenTTL) * time.Second
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.issuer", DefaultAuthIssuer)
	v.SetDefault("auth.token_ttl", DefaultAuthTokenTTL)
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/api/v1/users/register",
		"/api/v1/users/login",
		"/swagger",
	})
}
