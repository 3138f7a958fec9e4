package db

import (
	"time"

	"github.com/habitlog/internal/analytics"
)

// DailyEntry 记录某一天的打卡结果，EntryDate 唯一，重复提交同一天走 upsert。
// EntryDate 统一存储为 UTC 零点；列名与历史数据库保持一致。
type DailyEntry struct {
	ID               uint      `gorm:"primaryKey"`
	EntryDate        time.Time `gorm:"column:entry_date;type:date;uniqueIndex;not null"`
	BedBefore11PM    bool      `gorm:"column:bed_before_11pm"`
	EightHoursSleep  bool      `gorm:"column:eight_hours_sleep"`
	WakeBy730AM      bool      `gorm:"column:wake_by_730am"`
	Workout          bool      `gorm:"column:workout"`
	TenKSteps        bool      `gorm:"column:ten_k_steps"`
	ReadInvesting    bool      `gorm:"column:read_investing"`
	ReadFinance      bool      `gorm:"column:read_finance"`
	ReadCrypto       bool      `gorm:"column:read_crypto"`
	PlayWithAI       bool      `gorm:"column:play_with_ai"`
	ReadingBooks     bool      `gorm:"column:reading_books"`
	PostedTwitter    bool      `gorm:"column:posted_twitter"`
	PostedLinkedIn   bool      `gorm:"column:posted_linkedin"`
	PersonReachedOut string    `gorm:"column:person_reached_out;type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName 固定表名 daily_entries
func (DailyEntry) TableName() string {
	return "daily_entries"
}

// GoalColumns 是 upsert 时需要覆盖的目标列。
var GoalColumns = []string{
	analytics.GoalBedBefore11PM,
	analytics.GoalEightHoursSleep,
	analytics.GoalWakeBy730AM,
	analytics.GoalWorkout,
	analytics.GoalTenKSteps,
	analytics.GoalReadInvesting,
	analytics.GoalReadFinance,
	analytics.GoalReadCrypto,
	analytics.GoalPlayWithAI,
	analytics.GoalReadingBooks,
	analytics.GoalPostedTwitter,
	analytics.GoalPostedLinkedIn,
	analytics.GoalPersonReachedOut,
}

// Record 转换为分析引擎使用的值类型。
func (e DailyEntry) Record() analytics.Record {
	return analytics.Record{
		Date:             analytics.DateOf(e.EntryDate),
		BedBefore11PM:    e.BedBefore11PM,
		EightHoursSleep:  e.EightHoursSleep,
		WakeBy730AM:      e.WakeBy730AM,
		Workout:          e.Workout,
		TenKSteps:        e.TenKSteps,
		ReadInvesting:    e.ReadInvesting,
		ReadFinance:      e.ReadFinance,
		ReadCrypto:       e.ReadCrypto,
		PlayWithAI:       e.PlayWithAI,
		ReadingBooks:     e.ReadingBooks,
		PostedTwitter:    e.PostedTwitter,
		PostedLinkedIn:   e.PostedLinkedIn,
		PersonReachedOut: e.PersonReachedOut,
	}
}

// Records 批量转换
func Records(entries []DailyEntry) []analytics.Record {
	records := make([]analytics.Record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Record())
	}
	return records
}
