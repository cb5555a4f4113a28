package model

import (
	"strings"
	"time"
)

// PathSeparator 物化路径中的祖先 ID 分隔符.
const PathSeparator = "/"

// Folder 文件夹模型. 目录树以物化路径（materialized path）denormalize：
// Path 保存根到直接父级的祖先 ID 链，形如 "id1/id2/"（根级为空串），
// 祖先判断与子树查询均不需要递归遍历.
//
// 不变量：
//   - ParentID 非空时 Path == parent.Path + parent.ID + "/"
//   - ParentID 为空时 Path == ""
//   - Path 永远不包含自身 ID（森林，无环）
//   - (OwnerID, ParentID, Name) 同级唯一
type Folder struct {
	ID       string  `gorm:"primaryKey;size:36"                                      json:"id"`
	Name     string  `gorm:"size:255;index:idx_folder_sibling,unique"                json:"name"`
	OwnerID  string  `gorm:"size:36;index;index:idx_folder_sibling,unique"           json:"owner"`
	ParentID *string `gorm:"size:36;index;index:idx_folder_sibling,unique"           json:"parent"`
	// Path 祖先 ID 链，LIKE 前缀匹配即可取得整棵子树
	Path string `gorm:"size:4096;index" json:"path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PathIDs 返回 Path 中的祖先 ID 序列（根到直接父级）.
func (f *Folder) PathIDs() []string {
	if f.Path == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(f.Path, PathSeparator), PathSeparator)
}

// SubtreePrefix 返回后代文件夹 Path 的公共前缀. 任意后代 d 满足
// strings.HasPrefix(d.Path, f.SubtreePrefix()).
func (f *Folder) SubtreePrefix() string {
	return f.Path + f.ID + PathSeparator
}

// HasAncestor 判断 id 是否是该文件夹的祖先.
func (f *Folder) HasAncestor(id string) bool {
	for _, ancestor := range f.PathIDs() {
		if ancestor == id {
			return true
		}
	}

	return false
}
