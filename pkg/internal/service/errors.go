// Package service 实现业务逻辑层. handler 只做参数绑定和错误映射，
// 所有权校验、事务和事件发布都在这一层.
package service

import (
	"fmt"
	"net/http"
)

// Error 业务错误，携带 HTTP 状态码和机器可读的错误码.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation 参数无效.
func NewValidation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_FAILED", Message: message}
}

// NewUnauthorized 未认证或凭证无效.
func NewUnauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// NewForbidden 资源存在但不属于当前用户.
func NewForbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

// NewNotFound 资源不存在.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// NewConflict 与现有状态冲突（如重名）.
func NewConflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// NewTooLarge 上传内容超出大小限制.
func NewTooLarge(message string) *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Code: "FILE_TOO_LARGE", Message: message}
}

// NewInternal 内部错误. 对外隐藏细节.
func NewInternal() *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal server error"}
}
