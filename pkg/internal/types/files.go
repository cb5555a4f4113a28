package types

import (
	"time"
)

// UploadFileRequest 上传文件请求（multipart 表单字段部分）.
type UploadFileRequest struct {
	Name     string   `binding:"required"                              form:"name"`
	Type     string   `binding:"required,oneof=image video document"   form:"type"`
	FolderID *string  `form:"folder"`
	Tags     []string `form:"tags"`
}

// UploadFileResponse 上传响应，低风险字段投影：对象句柄与 URL 不回传.
type UploadFileResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Size     int64   `json:"size"`
	Owner    string  `json:"owner"`
	FolderID *string `json:"folder"`
}

// FileResponse 文件详情.
type FileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	Owner     string    `json:"owner"`
	FolderID  *string   `json:"folder"`
	URL       string    `json:"url"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateFileRequest 更新文件请求（重命名与标签全量替换）.
type UpdateFileRequest struct {
	Name string   `binding:"required"     json:"name"`
	Tags []string `binding:"required,min=1" json:"tags"`
}

// DownloadFileResponse 下载响应：预签名 URL，有效期内可直接访问.
type DownloadFileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SizeRangeRequest 大小区间过滤请求.
type SizeRangeRequest struct {
	MinSize *int64 `binding:"required" form:"min_size" json:"min_size"`
	MaxSize *int64 `binding:"required" form:"max_size" json:"max_size"`
}

// BulkDeleteRequest 批量删除请求.
type BulkDeleteRequest struct {
	FileIDs []string `binding:"required,min=1" json:"file_ids"`
}

// BulkDeleteResponse 批量删除结果. Deleted 可能小于请求数量：
// 不存在的 ID 被跳过而不算错误.
type BulkDeleteResponse struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
}

// BulkMoveRequest 批量移动请求.
type BulkMoveRequest struct {
	FileIDs     []string `binding:"required,min=1" json:"file_ids"`
	NewFolderID string   `binding:"required"       json:"new_folder"`
}

// BulkMoveResponse 批量移动结果.
type BulkMoveResponse struct {
	Moved int `json:"moved"`
}

// FileTagsRequest 添加/移除标签请求.
type FileTagsRequest struct {
	Tags []string `binding:"required,min=1" json:"tags"`
}
