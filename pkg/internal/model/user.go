// Package model 定义数据库模型.
package model

import (
	"time"
)

// User 用户模型. 密码仅保存 bcrypt 哈希，不参与 JSON 序列化.
type User struct {
	ID       string `gorm:"primaryKey;size:36"                json:"id"`
	Username string `gorm:"size:255;uniqueIndex"              json:"username"`
	Email    string `gorm:"size:255;uniqueIndex"              json:"email"`
	FullName string `gorm:"size:255;index"                    json:"full_name"`
	Password string `gorm:"size:255"                          json:"-"`
	// 存储配额计数（字节）. StorageUsed 由上传/删除维护，定时任务兜底校准
	StorageUsed  int64 `gorm:"default:0" json:"storage_used"`
	StorageQuota int64 `gorm:"default:0" json:"storage_quota"` // 0 表示不限制

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
