package model

import (
	"time"
)

// 审计动作枚举.
const (
	ActionUpload   = "upload"
	ActionDownload = "download"
	ActionDelete   = "delete"
	ActionMove     = "move"
	ActionRename   = "rename"
)

// AllowedActions 允许的审计动作集合.
var AllowedActions = map[string]struct{}{
	ActionUpload:   {},
	ActionDownload: {},
	ActionDelete:   {},
	ActionMove:     {},
	ActionRename:   {},
}

// Activity 审计日志模型，只追加不修改. FileID 与 FolderID 至多一个非空，
// 指向动作涉及的实体.
type Activity struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	UserID   string  `gorm:"size:36;index"      json:"user"`
	Action   string  `gorm:"size:32;index"      json:"action"`
	FileID   *string `gorm:"size:36;index"      json:"file,omitempty"`
	FolderID *string `gorm:"size:36;index"      json:"folder,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
