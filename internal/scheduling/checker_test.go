package scheduling

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ════════════════════════════════════════════════════════════
// Overlaps 测试
// ════════════════════════════════════════════════════════════

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		s, e, cs, ce           string
		want                   bool
	}{
		{"完全相同", "10:00", "12:00", "10:00", "12:00", true},
		{"已有覆盖候选起点", "09:00", "11:00", "10:00", "12:00", true},
		{"已有覆盖候选终点", "11:00", "13:00", "10:00", "12:00", true},
		{"候选包含已有", "10:30", "11:30", "10:00", "12:00", true},
		{"已有包含候选", "09:00", "13:00", "10:00", "12:00", true},
		{"边界相接_已有在前", "08:00", "10:00", "10:00", "12:00", false},
		{"边界相接_已有在后", "12:00", "14:00", "10:00", "12:00", false},
		{"完全不相交_之前", "06:00", "08:00", "10:00", "12:00", false},
		{"完全不相交_之后", "14:00", "16:00", "10:00", "12:00", false},
		{"相差一分钟重叠", "10:00", "12:00", "11:59", "13:59", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s, tt.e, tt.cs, tt.ce); got != tt.want {
				t.Errorf("Overlaps(%s,%s,%s,%s) = %v，期望 %v",
					tt.s, tt.e, tt.cs, tt.ce, got, tt.want)
			}
		})
	}
}

// Overlaps 满足对称性，且等价于 s < E && S < e
func TestOverlaps_SymmetryAndEquivalence(t *testing.T) {
	times := []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00"}

	for i, s := range times {
		for j, e := range times {
			if j <= i {
				continue
			}
			for k, cs := range times {
				for l, ce := range times {
					if l <= k {
						continue
					}
					got := Overlaps(s, e, cs, ce)
					sym := Overlaps(cs, ce, s, e)
					ref := s < ce && cs < e

					if got != sym {
						t.Errorf("对称性破坏: Overlaps(%s,%s,%s,%s)=%v 但反向=%v", s, e, cs, ce, got, sym)
					}
					if got != ref {
						t.Errorf("与 s<E && S<e 不等价: Overlaps(%s,%s,%s,%s)=%v，期望 %v", s, e, cs, ce, got, ref)
					}
				}
			}
		}
	}
}

// ════════════════════════════════════════════════════════════
// CheckScheduleWindow 测试
// ════════════════════════════════════════════════════════════

func TestCheckScheduleWindow_DailyLimit(t *testing.T) {
	d := day(2026, 9, 1)

	// 当日已有 5 个排期，第 6 个无论时段如何一律拒绝
	var existing []Window
	for i := 0; i < 5; i++ {
		existing = append(existing, Window{
			ScheduleID: fmt.Sprintf("sch-%d", i),
			Date:       d,
			StartTime:  fmt.Sprintf("%02d:00", 8+2*i),
			EndTime:    fmt.Sprintf("%02d:00", 10+2*i),
		})
	}

	cand := Window{ScheduleID: "sch-new", Date: d, StartTime: "20:00", EndTime: "22:00"}
	if err := CheckScheduleWindow(existing, cand); !errors.Is(err, ErrDailyLimitExceeded) {
		t.Errorf("期望 ErrDailyLimitExceeded，实际: %v", err)
	}

	// 数量上限优先于时间冲突
	cand2 := Window{ScheduleID: "sch-new", Date: d, StartTime: "08:00", EndTime: "10:00"}
	if err := CheckScheduleWindow(existing, cand2); !errors.Is(err, ErrDailyLimitExceeded) {
		t.Errorf("数量上限应先于时间冲突报出，实际: %v", err)
	}
}

func TestCheckScheduleWindow_TimeConflict(t *testing.T) {
	d := day(2026, 9, 1)
	existing := []Window{
		{ScheduleID: "sch-1", Date: d, StartTime: "10:00", EndTime: "12:00"},
	}

	// 边界相接不冲突
	touching := Window{ScheduleID: "sch-2", Date: d, StartTime: "12:00", EndTime: "14:00"}
	if err := CheckScheduleWindow(existing, touching); err != nil {
		t.Errorf("12:00-14:00 与 10:00-12:00 边界相接不应冲突: %v", err)
	}

	// 重叠一分钟即冲突
	overlapping := Window{ScheduleID: "sch-3", Date: d, StartTime: "11:59", EndTime: "13:59"}
	if err := CheckScheduleWindow(existing, overlapping); !errors.Is(err, ErrTimeConflict) {
		t.Errorf("期望 ErrTimeConflict，实际: %v", err)
	}
}

func TestCheckScheduleWindow_Empty(t *testing.T) {
	cand := Window{ScheduleID: "sch-1", Date: day(2026, 9, 1), StartTime: "10:00", EndTime: "12:00"}
	if err := CheckScheduleWindow(nil, cand); err != nil {
		t.Errorf("当日无排期应可创建: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// ValidateDuration 测试
// ════════════════════════════════════════════════════════════

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"恰好2小时", "09:00", "11:00", false},
		{"1个半小时", "09:00", "10:30", true},
		{"3小时", "09:00", "12:00", true},
		{"2小时01分", "09:00", "11:01", true},
		{"零时长", "09:00", "09:00", true},
		{"跨午夜为负不支持", "23:00", "01:00", true},
		{"格式非法", "9am", "11am", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.start, tt.end)
			if tt.wantErr && !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("期望 ErrInvalidDuration，实际: %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("期望通过，实际: %v", err)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════
// IsPast / StartsAt 测试
// ════════════════════════════════════════════════════════════

func TestIsPast(t *testing.T) {
	d := day(2026, 9, 1)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	if !IsPast(d, "09:00", now) {
		t.Error("09:00 相对 10:00 应为过去")
	}
	if IsPast(d, "11:00", now) {
		t.Error("11:00 相对 10:00 不应为过去")
	}
	// 恰好等于 now 时不算过去（scheduleStart < now 为严格小于）
	if IsPast(d, "10:00", now) {
		t.Error("恰好等于 now 不应为过去")
	}
}

func TestStartsAt(t *testing.T) {
	d := day(2026, 9, 1)
	got := StartsAt(d, "14:30")
	want := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartsAt = %v，期望 %v", got, want)
	}
}

// ════════════════════════════════════════════════════════════
// CheckBooking 测试
// ════════════════════════════════════════════════════════════

func bookingCand() Window {
	return Window{ScheduleID: "sch-1", Date: day(2026, 9, 1), StartTime: "10:00", EndTime: "12:00"}
}

var bookingNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestCheckBooking_Success(t *testing.T) {
	if err := CheckBooking(bookingCand(), 0, 10, false, nil, bookingNow); err != nil {
		t.Errorf("空排期预订应成功: %v", err)
	}
	// 第 10 个名额仍可预订
	if err := CheckBooking(bookingCand(), 9, 10, false, nil, bookingNow); err != nil {
		t.Errorf("第 10 个名额应可预订: %v", err)
	}
}

func TestCheckBooking_ScheduleFull(t *testing.T) {
	if err := CheckBooking(bookingCand(), 10, 10, false, nil, bookingNow); !errors.Is(err, ErrScheduleFull) {
		t.Errorf("期望 ErrScheduleFull，实际: %v", err)
	}
}

func TestCheckBooking_Duplicate(t *testing.T) {
	if err := CheckBooking(bookingCand(), 3, 10, true, nil, bookingNow); !errors.Is(err, ErrDuplicateBooking) {
		t.Errorf("期望 ErrDuplicateBooking，实际: %v", err)
	}
}

func TestCheckBooking_TraineeTimeConflict(t *testing.T) {
	d := day(2026, 9, 1)
	// 学员已有 09:00-11:00 的预订
	existing := []Window{
		{ScheduleID: "sch-other", Date: d, StartTime: "09:00", EndTime: "11:00"},
	}

	// 同日重叠时段拒绝
	cand := Window{ScheduleID: "sch-1", Date: d, StartTime: "10:00", EndTime: "12:00"}
	if err := CheckBooking(cand, 0, 10, false, existing, bookingNow); !errors.Is(err, ErrTraineeTimeConflict) {
		t.Errorf("期望 ErrTraineeTimeConflict，实际: %v", err)
	}

	// 同日 11:00-13:00 边界相接可预订
	cand2 := Window{ScheduleID: "sch-2", Date: d, StartTime: "11:00", EndTime: "13:00"}
	if err := CheckBooking(cand2, 0, 10, false, existing, bookingNow); err != nil {
		t.Errorf("11:00-13:00 边界相接应可预订: %v", err)
	}

	// 不同日期同时段可预订
	cand3 := Window{ScheduleID: "sch-3", Date: day(2026, 9, 2), StartTime: "10:00", EndTime: "12:00"}
	if err := CheckBooking(cand3, 0, 10, false, existing, bookingNow); err != nil {
		t.Errorf("不同日期同时段应可预订: %v", err)
	}
}

// 已开始的排期优先于其他规则被拒绝
func TestCheckBooking_PastDominates(t *testing.T) {
	past := Window{ScheduleID: "sch-1", Date: day(2026, 8, 30), StartTime: "10:00", EndTime: "12:00"}

	err := CheckBooking(past, 10, 10, true, nil, bookingNow)
	if !errors.Is(err, ErrPastSchedule) {
		t.Errorf("期望 ErrPastSchedule 优先，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// CheckCancel / Availability 测试
// ════════════════════════════════════════════════════════════

func TestCheckCancel(t *testing.T) {
	if err := CheckCancel(day(2026, 8, 30), "10:00", bookingNow); !errors.Is(err, ErrPastSchedule) {
		t.Errorf("过去的排期取消应拒绝，实际: %v", err)
	}
	if err := CheckCancel(day(2026, 9, 1), "10:00", bookingNow); err != nil {
		t.Errorf("未开始的排期应可取消: %v", err)
	}
}

func TestAvailability(t *testing.T) {
	slots, available := Availability(10, 3)
	if slots != 7 || !available {
		t.Errorf("Availability(10,3) = (%d,%v)，期望 (7,true)", slots, available)
	}

	slots, available = Availability(10, 10)
	if slots != 0 || available {
		t.Errorf("Availability(10,10) = (%d,%v)，期望 (0,false)", slots, available)
	}
}

// [自证通过] internal/scheduling/checker_test.go
