package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultHistoryLimit 是历史列表默认返回的条数
	DefaultHistoryLimit = 30
	// MaxHistoryLimit 限制单次返回的条数
	MaxHistoryLimit = 3650
)

const (
	maxReachedOutRunes = 200
	maxSanitizePasses  = 4
)

// ErrEntryNotFound 在指定日期没有记录时返回
var ErrEntryNotFound = errors.New("daily entry not found")

// EntryInput 定义一次提交的全部字段，缺失的布尔字段按 false 处理。
type EntryInput struct {
	EntryDate        time.Time
	BedBefore11PM    bool
	EightHoursSleep  bool
	WakeBy730AM      bool
	Workout          bool
	TenKSteps        bool
	ReadInvesting    bool
	ReadFinance      bool
	ReadCrypto       bool
	PlayWithAI       bool
	ReadingBooks     bool
	PostedTwitter    bool
	PostedLinkedIn   bool
	PersonReachedOut string
}

// SubmitResult 是提交后的返回值，StreakDays 为截至当天有任意目标完成的天数。
type SubmitResult struct {
	Entry      *db.DailyEntry
	StreakDays int
}

// TrackingService 负责每日记录的读写，按日期 upsert，最后一次写入生效。
type TrackingService struct {
	db        *gorm.DB
	notifier  Notifier
	sanitizer *bluemonday.Policy
}

// NewTrackingService 构造 TrackingService，notifier 为 nil 时使用 NoopNotifier。
func NewTrackingService(gdb *gorm.DB, notifier Notifier) *TrackingService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &TrackingService{
		db:        gdb,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Today 返回今天的记录；尚未提交时返回全部为空的默认记录（不落库）。
func (s *TrackingService) Today(now time.Time) (*db.DailyEntry, error) {
	date := analytics.DateOf(now)

	entry, err := s.Get(date)
	if errors.Is(err, ErrEntryNotFound) {
		return &db.DailyEntry{EntryDate: date}, nil
	}
	return entry, err
}

// Get 根据日期获取记录
func (s *TrackingService) Get(date time.Time) (*db.DailyEntry, error) {
	var entry db.DailyEntry
	if err := s.db.Where("entry_date = ?", analytics.DateOf(date)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get daily entry: %w", err)
	}
	return &entry, nil
}

// Upsert 插入或覆盖指定日期的记录
func (s *TrackingService) Upsert(input EntryInput) (*db.DailyEntry, error) {
	date := analytics.DateOf(input.EntryDate)

	record := db.DailyEntry{
		EntryDate:        date,
		BedBefore11PM:    input.BedBefore11PM,
		EightHoursSleep:  input.EightHoursSleep,
		WakeBy730AM:      input.WakeBy730AM,
		Workout:          input.Workout,
		TenKSteps:        input.TenKSteps,
		ReadInvesting:    input.ReadInvesting,
		ReadFinance:      input.ReadFinance,
		ReadCrypto:       input.ReadCrypto,
		PlayWithAI:       input.PlayWithAI,
		ReadingBooks:     input.ReadingBooks,
		PostedTwitter:    input.PostedTwitter,
		PostedLinkedIn:   input.PostedLinkedIn,
		PersonReachedOut: s.cleanText(input.PersonReachedOut),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns(append(append([]string{}, db.GoalColumns...), "updated_at")),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert daily entry: %w", err)
	}

	var saved db.DailyEntry
	if err := s.db.Where("entry_date = ?", date).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("reload daily entry: %w", err)
	}

	return &saved, nil
}

// Submit 保存记录并在达到里程碑时发送庆祝消息；通知失败只记录日志，不影响保存结果。
func (s *TrackingService) Submit(ctx context.Context, input EntryInput) (*SubmitResult, error) {
	entry, err := s.Upsert(input)
	if err != nil {
		return nil, err
	}

	streakDays, err := s.ActiveDaysThrough(entry.EntryDate)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendStreakCelebration(ctx, streakDays); err != nil {
		log.Error("streak celebration failed", "streak_days", streakDays, "error", err)
	}

	return &SubmitResult{Entry: entry, StreakDays: streakDays}, nil
}

// History 按日期倒序返回最近 limit 条记录
func (s *TrackingService) History(limit int) ([]db.DailyEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	var entries []db.DailyEntry
	if err := s.db.Order("entry_date DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// All 按日期倒序返回全部记录
func (s *TrackingService) All() ([]db.DailyEntry, error) {
	var entries []db.DailyEntry
	if err := s.db.Order("entry_date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListSince 返回 entry_date >= start 的记录，日期倒序
func (s *TrackingService) ListSince(start time.Time) ([]db.DailyEntry, error) {
	var entries []db.DailyEntry
	if err := s.db.Where("entry_date >= ?", analytics.DateOf(start)).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries since: %w", err)
	}
	return entries, nil
}

// ListBetween 返回闭区间 [start, end] 内的记录，日期升序
func (s *TrackingService) ListBetween(start, end time.Time) ([]db.DailyEntry, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	var entries []db.DailyEntry
	if err := s.db.Where("entry_date BETWEEN ? AND ?", analytics.DateOf(start), analytics.DateOf(end)).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries between: %w", err)
	}
	return entries, nil
}

// ListYear 返回指定年份的全部记录，日期升序
func (s *TrackingService) ListYear(year int) ([]db.DailyEntry, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return s.ListBetween(start, end)
}

// ActiveDaysThrough 统计截至 date（含）至少完成一个目标的天数。
func (s *TrackingService) ActiveDaysThrough(date time.Time) (int, error) {
	conditions := make([]string, 0, len(db.GoalColumns))
	for _, column := range db.GoalColumns {
		if column == analytics.GoalPersonReachedOut {
			conditions = append(conditions, "(person_reached_out IS NOT NULL AND person_reached_out <> '')")
			continue
		}
		conditions = append(conditions, column+" = ?")
	}

	args := []any{analytics.DateOf(date)}
	for range len(db.GoalColumns) - 1 {
		args = append(args, true)
	}

	var count int64
	if err := s.db.Model(&db.DailyEntry{}).
		Where("entry_date <= ?", args[0]).
		Where(strings.Join(conditions, " OR "), args[1:]...).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count active days: %w", err)
	}

	return int(count), nil
}

// cleanText 去掉 HTML 标记与首尾空白，并限制长度。
// 反转义后的文本会再次过滤，直到结果稳定，实体编码的标签同样会被去掉。
func (s *TrackingService) cleanText(value string) string {
	cleaned := value
	stable := false
	for range maxSanitizePasses {
		next := html.UnescapeString(s.sanitizer.Sanitize(cleaned))
		if next == cleaned {
			stable = true
			break
		}
		cleaned = next
	}
	if !stable {
		// 多层编码仍未收敛时保留转义形式
		cleaned = s.sanitizer.Sanitize(cleaned)
	}
	cleaned = strings.TrimSpace(cleaned)
	return truncateRunes(cleaned, maxReachedOutRunes)
}

func truncateRunes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}
