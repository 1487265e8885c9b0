package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/config"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/model"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/internal/repository"
	"github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/database"
	applogger "github.com/iftialmin10/gym-class-schedule-and-membership-management-backend/pkg/logger"
)

// 开发环境演示数据：管理员、教练、学员各若干，外加两节次日课程。
// 重复执行安全：已存在的用户按邮箱跳过。

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	seedUsers := []struct {
		email     string
		password  string
		firstName string
		lastName  string
		role      model.Role
	}{
		{"admin@gym.com", "admin123", "Admin", "Admin", model.RoleAdmin},
		{"trainer1@gym.com", "trainer123", "Trainer", "One", model.RoleTrainer},
		{"trainer2@gym.com", "trainer123", "Trainer", "Two", model.RoleTrainer},
		{"trainee1@gym.com", "trainee123", "Trainee", "One", model.RoleTrainee},
		{"trainee2@gym.com", "trainee123", "Trainee", "Two", model.RoleTrainee},
	}

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := repo.User.GetByEmail(ctx, su.email)
		if err == nil {
			users[su.email] = existing
			logger.Info("用户已存在，跳过", zap.String("email", su.email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Fatal("查询用户失败", zap.Error(err))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), 10)
		if err != nil {
			logger.Fatal("密码哈希失败", zap.Error(err))
		}
		user := &model.User{
			Email:        su.email,
			PasswordHash: string(hash),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Role:         su.role,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			logger.Fatal("创建用户失败", zap.String("email", su.email), zap.Error(err))
		}
		users[su.email] = user
		logger.Info("用户已创建", zap.String("email", su.email), zap.String("role", string(su.role)))
	}

	// 次日两节演示课
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	existing, err := repo.Schedule.ListByDay(ctx, tomorrow)
	if err != nil {
		logger.Fatal("查询排期失败", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("次日已有排期，跳过演示课创建")
		return
	}

	schedule1 := &model.ClassSchedule{
		Title:       "Morning Yoga Session",
		Description: "Relaxing morning yoga session",
		Date:        tomorrow,
		StartTime:   "09:00",
		EndTime:     "11:00",
		MaxTrainees: model.DefaultMaxTrainees,
		TrainerID:   users["trainer1@gym.com"].UserID,
	}
	schedule2 := &model.ClassSchedule{
		Title:       "Cardio Workout Session",
		Description: "High-intensity cardio session",
		Date:        tomorrow,
		StartTime:   "14:00",
		EndTime:     "16:00",
		MaxTrainees: model.DefaultMaxTrainees,
		TrainerID:   users["trainer2@gym.com"].UserID,
	}
	for _, sch := range []*model.ClassSchedule{schedule1, schedule2} {
		if err := repo.Schedule.Create(ctx, sch); err != nil {
			logger.Fatal("创建排期失败", zap.String("title", sch.Title), zap.Error(err))
		}
		logger.Info("排期已创建", zap.String("title", sch.Title))
	}

	for _, traineeEmail := range []string{"trainee1@gym.com", "trainee2@gym.com"} {
		booking := &model.Booking{
			TraineeID:       users[traineeEmail].UserID,
			ClassScheduleID: schedule1.ScheduleID,
		}
		if err := repo.Booking.Create(ctx, booking); err != nil {
			logger.Fatal("创建预订失败", zap.Error(err))
		}
	}
	logger.Info("演示数据填充完成")
}
