package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/configs"
	"github.com/yeisme/cloudvault/pkg/middleware"
)

func testAuthConfig() configs.AuthConfig {
	return configs.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "cloudvault",
		TokenTTL:  3600,
		SkipPaths: []string{"/api/v1/health", "/api/v1/users/login"},
	}
}

func TestIssueAndParseToken(t *testing.T) {
	conf := testAuthConfig()

	token, expiresAt, err := middleware.IssueToken("u1", "alice", conf)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", expiresAt)
	}

	claims, err := middleware.ParseToken(token, conf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if claims.Subject != "u1" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}

	// 错误密钥拒绝
	bad := conf
	bad.JWTSecret = "other-secret"

	if _, err := middleware.ParseToken(token, bad); err == nil {
		t.Fatal("wrong secret should be rejected")
	}

	// 错误签发方拒绝
	badIss := conf
	badIss.Issuer = "someone-else"

	if _, err := middleware.ParseToken(token, badIss); err == nil {
		t.Fatal("wrong issuer should be rejected")
	}
}

// newAuthRouter 构造带认证中间件的测试路由，回显识别到的用户 ID.
func newAuthRouter(conf configs.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(middleware.AuthMiddleware(conf))
	e.GET("/api/v1/files", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentUserID(c))
	})
	e.GET("/api/v1/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return e
}

func TestAuthMiddleware(t *testing.T) {
	conf := testAuthConfig()
	router := newAuthRouter(conf)

	// 无令牌拒绝
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d", w.Code)
	}

	// 跳过路径直接放行
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("skip path: status = %d", w.Code)
	}

	// 有效令牌注入用户身份
	token, _, err := middleware.IssueToken("u1", "alice", conf)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "u1" {
		t.Fatalf("valid token: status = %d body = %q", w.Code, w.Body.String())
	}

	// 坏令牌拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d", w.Code)
	}
}

func TestAuthMiddlewareDevQueryFallback(t *testing.T) {
	conf := testAuthConfig()
	conf.DevAllowQuery = true

	router := newAuthRouter(conf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files?user=dev-user", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "dev-user" {
		t.Fatalf("dev fallback: status = %d body = %q", w.Code, w.Body.String())
	}

	// 关闭开关后兜底失效
	conf.DevAllowQuery = false
	router = newAuthRouter(conf)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files?user=dev-user", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled fallback: status = %d", w.Code)
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	conf := testAuthConfig()
	conf.Enabled = false

	router := newAuthRouter(conf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	router.ServeHTTP(w, req)

	// 认证关闭时放行，但没有用户身份
	if w.Code != http.StatusOK || w.Body.String() != "" {
		t.Fatalf("disabled auth: status = %d body = %q", w.Code, w.Body.String())
	}
}
