package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yeisme/cloudvault/pkg/configs"
)

// Claims JWT 载荷，Subject 为用户 ID.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type userKey struct{}

// AuthMiddleware 基于 Bearer JWT 做统一身份认证校验。
//   - 要求 Authorization: Bearer <token>，HMAC 签名由 configs.auth.jwt_secret 校验
//   - 支持通过配置跳过某些路径（如 /metrics, /api/v1/health, 注册与登录）
//   - 开发模式可允许 query user 兜底（由 configs.auth.dev_allow_query 控制）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if conf.DevAllowQuery && c.Query("user") != "" {
				setCurrentUser(c, c.Query("user"), "")
				c.Next()

				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		claims, err := ParseToken(token, conf)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		setCurrentUser(c, claims.Subject, claims.Username)
		c.Next()
	}
}

// IssueToken 为用户签发访问令牌.
func IssueToken(userID, username string, conf configs.AuthConfig) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(conf.GetTokenTTL())

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    conf.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return token, expiresAt, nil
}

// ParseToken 校验并解析访问令牌.
func ParseToken(token string, conf configs.AuthConfig) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(conf.JWTSecret), nil
	}, jwt.WithIssuer(conf.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return claims, nil
}

// bearerToken 提取 Authorization 头中的 Bearer 令牌.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// setCurrentUser 将身份注入 gin.Context 与 request.Context.
func setCurrentUser(c *gin.Context, userID, username string) {
	c.Set("user_id", userID)

	if username != "" {
		c.Set("username", username)
	}

	ctx := context.WithValue(c.Request.Context(), userKey{}, userID)
	c.Request = c.Request.WithContext(ctx)
}

// CurrentUserID 获取当前请求用户 ID，未认证时返回空串.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(string); ok2 {
			return id
		}
	}

	if v := c.Request.Context().Value(userKey{}); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}

	return ""
}

// UserIDFromContext 从 request context 获取用户 ID，供 service 层使用.
func UserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(userKey{}); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}

	return ""
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
