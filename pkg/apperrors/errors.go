// Package apperrors 提供带分类的业务错误类型，供边界层映射为 HTTP 状态码
package apperrors

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	// KindInternal 未知/内部错误
	KindInternal Kind = iota
	// KindValidation 入参校验错误
	KindValidation
	// KindNotFound 资源不存在（或被数据权限过滤）
	KindNotFound
	// KindPermission 无权访问
	KindPermission
	// KindConflict 业务规则冲突
	KindConflict
)

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 创建校验错误
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound 创建资源不存在错误
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// PermissionDenied 创建无权访问错误
func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

// Conflict 创建业务规则冲突错误
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Wrap 包装底层错误为内部错误
func Wrap(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf 返回错误的分类，非 *Error 一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 返回面向调用方的错误消息，内部错误只返回通用描述
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
