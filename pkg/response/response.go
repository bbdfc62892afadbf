// Package response 提供统一的 HTTP 响应信封：{code, message, data, timestamp}
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
)

// Body 统一响应结构
type Body struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// New 构建响应体
func New(code int, message string, data any) Body {
	return Body{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// OK 成功响应
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, New(http.StatusOK, "success", data))
}

// Created 创建成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, New(http.StatusCreated, "created", data))
}

// BadRequest 入参错误响应
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, New(http.StatusBadRequest, message, nil))
}

// Error 按错误分类映射响应状态
func Error(c *gin.Context, err error) {
	status := statusOf(err)
	c.JSON(status, New(status, apperrors.MessageOf(err), nil))
}

func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindConflict:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
