package model

import (
	"time"
)

// Tag 标签模型. 每个用户维护独立的标签命名空间，文件通过 file_tags
// 关联表引用标签.
type Tag struct {
	ID     string `gorm:"primaryKey;size:36"                    json:"id"`
	Name   string `gorm:"size:255;index:idx_tag_owner,unique"   json:"name"`
	UsedBy string `gorm:"size:36;index;index:idx_tag_owner,unique" json:"used_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
