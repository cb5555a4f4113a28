package model

import (
	"time"
)

// 文件类型枚举.
const (
	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeDocument = "document"
)

// AllowedFileTypes 允许的文件类型集合.
var AllowedFileTypes = map[string]struct{}{
	FileTypeImage:    {},
	FileTypeVideo:    {},
	FileTypeDocument: {},
}

// File 文件元数据模型. 真实字节存放在对象存储，这里只保存不透明句柄
// ObjectKey 与公开引用 URL，二者在上传成功后不可变.
type File struct {
	ID   string `gorm:"primaryKey;size:36"                                  json:"id"`
	Name string `gorm:"size:512;index:idx_file_identity,unique"             json:"name"`
	Type string `gorm:"size:32;index"                                       json:"type"`
	Size int64  `gorm:"index"                                               json:"size"`
	// (Name, OwnerID, FolderID) 三元组唯一：同一用户同一文件夹下不允许重名
	OwnerID  string  `gorm:"size:36;index;index:idx_file_identity,unique" json:"owner"`
	FolderID *string `gorm:"size:36;index;index:idx_file_identity,unique" json:"folder"`
	// ObjectKey 对象存储句柄，URL 公开引用，上传后均不可变
	ObjectKey string `gorm:"size:1024" json:"-"`
	URL       string `gorm:"size:2048" json:"url"`

	// Tags 引用式标签关联（多对多），而非自由文本
	Tags []Tag `gorm:"many2many:file_tags" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
