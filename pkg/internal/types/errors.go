// Package types 定义请求/响应结构体与统一的 API 错误类型.
package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别. 调用方依据类别分支，而不是匹配错误文本.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument" // 输入缺失或格式错误
	KindNotFound        Kind = "not_found"        // 引用的实体不存在（或列表无匹配）
	KindConflict        Kind = "conflict"         // 唯一性冲突
	KindUploadFailed    Kind = "upload_failed"    // 对象存储写入失败，记录未落库
	KindNoOp            Kind = "no_op"            // 变更命中零条记录
)

// Error 不透明的 API 错误值，携带 HTTP 状态提示与可读信息.
// 不用于核心逻辑的控制流，只在边界返回.
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// InvalidArgument 构造输入错误.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound 构造未找到错误.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict 构造唯一性冲突错误.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// UploadFailed 构造对象存储写入失败错误.
func UploadFailed(format string, args ...any) *Error {
	return &Error{Kind: KindUploadFailed, Status: http.StatusBadGateway, Message: fmt.Sprintf(format, args...)}
}

// NoOp 构造零记录变更错误，与 NotFound 区分"过滤条件未命中"与"条件本身非法".
func NoOp(format string, args ...any) *Error {
	return &Error{Kind: KindNoOp, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf 提取错误类别，非 API 错误返回空串.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return ""
}

// StatusOf 提取 HTTP 状态提示，非 API 错误按 500 处理.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	return http.StatusInternalServerError
}

// IsKind 判断错误是否属于给定类别.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
