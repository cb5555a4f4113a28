package types

import (
	"time"
)

// RegisterRequest 用户注册请求.
type RegisterRequest struct {
	Username string `binding:"required"           json:"username"`
	Email    string `binding:"required,email"     json:"email"`
	FullName string `binding:"required"           json:"full_name"`
	Password string `binding:"required,min=8"     json:"password"`
}

// LoginRequest 登录请求.
type LoginRequest struct {
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required"       json:"password"`
}

// LoginResponse 登录响应：JWT 访问令牌.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// ChangePasswordRequest 修改密码请求.
type ChangePasswordRequest struct {
	OldPassword string `binding:"required"       json:"old_password"`
	NewPassword string `binding:"required,min=8" json:"new_password"`
}

// UpdateEmailRequest 修改邮箱请求.
type UpdateEmailRequest struct {
	Email string `binding:"required,email" json:"email"`
}

// UpdateFullNameRequest 修改姓名请求.
type UpdateFullNameRequest struct {
	FullName string `binding:"required" json:"full_name"`
}

// UserResponse 用户信息（不含任何凭据字段）.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	StorageUsed  int64     `json:"storage_used"`
	StorageQuota int64     `json:"storage_quota"`
	CreatedAt    time.Time `json:"created_at"`
}
