package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 文件领域 --------------------------

// FileRef 标识一条文件元数据及其对象存储位置.
type FileRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	FolderID    string `json:"folder_id,omitempty"`
	ObjectKey   string `json:"object_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// FileUploadedPayload 文件上传完成（字节与元数据均已持久化）.
type FileUploadedPayload struct {
	File    FileRef `json:"file"`
	OwnerID string  `json:"owner_id"`
}

// FileDeletedPayload 文件删除完成（含批量删除逐条展开）.
type FileDeletedPayload struct {
	File    FileRef `json:"file"`
	OwnerID string  `json:"owner_id"`
	// Bulk 表示该事件来自批量删除操作.
	Bulk bool `json:"bulk,omitempty"`
}

// FileMovedPayload 文件移动到另一文件夹.
type FileMovedPayload struct {
	File         FileRef `json:"file"`
	OwnerID      string  `json:"owner_id"`
	FromFolderID string  `json:"from_folder_id,omitempty"`
	ToFolderID   string  `json:"to_folder_id,omitempty"`
}

// FileDownloadedPayload 已为文件签发下载 URL.
type FileDownloadedPayload struct {
	File    FileRef   `json:"file"`
	OwnerID string    `json:"owner_id"`
	Expires time.Time `json:"expires,omitempty"`
}

// -------------------------- 文件夹领域 --------------------------

// FolderRef 标识文件夹树中的一个节点.
type FolderRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// FolderMovedPayload 子树重新挂载完成.
type FolderMovedPayload struct {
	Folder      FolderRef `json:"folder"`
	OwnerID     string    `json:"owner_id"`
	NewParentID string    `json:"new_parent_id"`
	// Descendants 为级联更新路径的后代数量.
	Descendants int `json:"descendants,omitempty"`
}

// FolderDeletedPayload 子树递归删除完成.
type FolderDeletedPayload struct {
	Folder  FolderRef `json:"folder"`
	OwnerID string    `json:"owner_id"`
	// DeletedFolders 为删除的文件夹总数（含根）.
	DeletedFolders int `json:"deleted_folders"`
	// OrphanedFiles 为转为未归档状态的文件数.
	OrphanedFiles int `json:"orphaned_files"`
}

// -------------------------- 审计领域 --------------------------

// ActivityRecordedPayload 一条操作审计已落库.
type ActivityRecordedPayload struct {
	ActivityID string `json:"activity_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
	FileID     string `json:"file_id,omitempty"`
	FolderID   string `json:"folder_id,omitempty"`
}

// -------------------------- 账户领域 --------------------------

// UserRegisteredPayload 新账户注册完成.
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
