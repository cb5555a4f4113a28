package types

import (
	"time"
)

// LogActivityRequest 显式记录审计日志请求. FileID 与 FolderID 必须且只能提供一个.
type LogActivityRequest struct {
	Action   string  `binding:"required,oneof=upload download delete move rename" json:"action"`
	FileID   *string `json:"file,omitempty"`
	FolderID *string `json:"folder,omitempty"`
}

// ActivityResponse 审计日志项.
type ActivityResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Action    string    `json:"action"`
	FileID    *string   `json:"file,omitempty"`
	FolderID  *string   `json:"folder,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
