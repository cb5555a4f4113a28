package types

import (
	"time"
)

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name     string  `binding:"required"        json:"name"`   // 文件夹名称
	ParentID *string `json:"parent,omitempty"`                 // 父文件夹 ID（可选，缺省为根级）
}

// FolderSummary 文件夹摘要（id + name），用于路径展示与树节点.
type FolderSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderResponse 文件夹详情. Parent/Owner/Ancestors 解析为展示形式.
type FolderResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Owner     FolderOwner     `json:"owner"`
	Parent    *FolderSummary  `json:"parent,omitempty"`
	Ancestors []FolderSummary `json:"path"` // 根到直接父级
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FolderOwner 所有者展示信息.
type FolderOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderListItem 文件夹列表项（根级/子级列表）.
type FolderListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderPathResponse 文件夹完整路径.
type FolderPathResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Ancestors []FolderSummary `json:"path"`
}

// FolderTreeNode 递归组装的文件夹树节点.
type FolderTreeNode struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Children []FolderTreeNode `json:"children"`
}

// FolderTreeResponse 文件夹树响应. Root 为空时 Nodes 是根级森林.
type FolderTreeResponse struct {
	Root  *string          `json:"root,omitempty"`
	Nodes []FolderTreeNode `json:"tree"`
}

// RenameFolderRequest 重命名文件夹请求.
type RenameFolderRequest struct {
	Name string `binding:"required" json:"name"` // 新文件夹名称
}

// MoveFolderRequest 移动文件夹请求.
type MoveFolderRequest struct {
	NewParentID string `binding:"required" json:"new_parent"` // 目标父文件夹 ID
}

// DeleteFolderResponse 递归删除结果.
type DeleteFolderResponse struct {
	DeletedFolders int `json:"deleted_folders"` // 被删除的文件夹数量（含自身）
	OrphanedFiles  int `json:"orphaned_files"`  // 被置为未归档的文件数量
}
