package types

import (
	"time"
)

// CreateTagRequest 创建标签请求.
type CreateTagRequest struct {
	Name string `binding:"required" json:"name"`
}

// UpdateTagRequest 更新标签请求.
type UpdateTagRequest struct {
	Name string `binding:"required" json:"name"`
}

// TagResponse 标签详情.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UsedBy    string    `json:"used_by"`
	CreatedAt time.Time `json:"created_at"`
}
