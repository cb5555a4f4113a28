// Package service 实现业务逻辑层：文件夹树、文件目录、标签、审计与账户.
// service 不处理 HTTP 细节，输入输出均为 types 中的结构体，
// 错误统一用 types.Error 表达类别.
package service

import (
	"sync"

	"github.com/google/uuid"
)

// newID 生成实体主键.
func newID() string {
	return uuid.NewString()
}

// ownerLocks 按所有者序列化文件夹树的结构性修改（创建/移动/删除）.
// 存储层只保证单行原子性，跨行的路径级联需要在进程内互斥.
var ownerLocks sync.Map

// lockOwner 获取并锁定 owner 对应的互斥锁，返回解锁函数.
func lockOwner(owner string) func() {
	mu, _ := ownerLocks.LoadOrStore(owner, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()

	return m.Unlock
}
