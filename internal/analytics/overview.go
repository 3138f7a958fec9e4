package analytics

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWindowDays 是未指定窗口时的默认天数。
const DefaultWindowDays = 30

// Windows 列出概览支持的时间窗口。
var Windows = []int{7, 30, 90, 365}

// ErrInvalidWindow 在窗口不在 Windows 中时返回。
var ErrInvalidWindow = errors.New("invalid overview window")

var hundred = decimal.NewFromInt(100)

// GoalStat 是单个目标在窗口内的完成次数与百分比。
type GoalStat struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// Overview 汇总窗口内各目标的完成情况。
// 百分比的分母是窗口内实际存在的记录数，而不是日历天数；没有记录的日子不计入分母。
type Overview struct {
	PeriodDays   int
	TotalEntries int
	Goals        map[string]GoalStat
	// CoreComplete 统计四个核心目标同时完成的天数。
	CoreComplete  GoalStat
	CoreGoalCount int
}

// ValidateWindow 校验窗口天数。
func ValidateWindow(days int) error {
	if !slices.Contains(Windows, days) {
		return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidWindow, days, Windows)
	}
	return nil
}

// WindowStart 返回窗口起始日期 today - days（含）。
func WindowStart(today time.Time, days int) time.Time {
	return DateOf(today).AddDate(0, 0, -days)
}

// BuildOverview 统计 entry_date >= today - days 的记录。
func BuildOverview(records []Record, days int, today time.Time) Overview {
	start := WindowStart(today, days)

	counts := make(map[string]int, len(goals))
	total, core := 0, 0
	for _, record := range records {
		if DateOf(record.Date).Before(start) {
			continue
		}
		total++
		for _, goal := range goals {
			if goal.Completed(record) {
				counts[goal.Key]++
			}
		}
		if record.CoreComplete() {
			core++
		}
	}

	overview := Overview{
		PeriodDays:    days,
		TotalEntries:  total,
		Goals:         make(map[string]GoalStat, len(goals)),
		CoreComplete:  GoalStat{Count: core, Percentage: Percentage(core, total)},
		CoreGoalCount: len(CoreGoals()),
	}
	for _, goal := range goals {
		overview.Goals[goal.Key] = GoalStat{Count: counts[goal.Key], Percentage: Percentage(counts[goal.Key], total)}
	}

	return overview
}

// Percentage 计算 round(count/total*100)，total 为 0 时按 1 处理，结果限制在 0..100。
func Percentage(count, total int) int {
	if total <= 0 {
		total = 1
	}
	if count <= 0 {
		return 0
	}

	value := decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart()

	return int(min(max(value, 0), 100))
}
