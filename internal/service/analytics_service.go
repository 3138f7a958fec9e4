package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
)

// ErrInvalidYear 表示热力图年份超出可接受范围
var ErrInvalidYear = errors.New("invalid year")

const (
	minHeatmapYear = 1970
	maxHeatmapYear = 9999
)

// StreakReport 汇总当前连胜与历史最长连胜。
type StreakReport struct {
	Current analytics.StreakSet
	Longest analytics.StreakSet
}

// AnalyticsService 从存储读取记录，再交给 analytics 包计算统计结果。
type AnalyticsService struct {
	tracking *TrackingService
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(tracking *TrackingService) *AnalyticsService {
	return &AnalyticsService{tracking: tracking}
}

// Overview 计算最近 days 天（含今天前 days 天的当日）的完成率。
func (s *AnalyticsService) Overview(days int, now time.Time) (analytics.Overview, error) {
	if err := analytics.ValidateWindow(days); err != nil {
		return analytics.Overview{}, err
	}

	entries, err := s.tracking.ListSince(analytics.WindowStart(now, days))
	if err != nil {
		return analytics.Overview{}, err
	}

	return analytics.BuildOverview(db.Records(entries), days, now), nil
}

// Streaks 基于全部记录计算当前与最长连胜
func (s *AnalyticsService) Streaks() (StreakReport, error) {
	entries, err := s.tracking.All()
	if err != nil {
		return StreakReport{}, err
	}

	records := db.Records(entries)
	return StreakReport{
		Current: analytics.Streaks(records),
		Longest: analytics.LongestStreaks(records),
	}, nil
}

// Heatmap 返回指定年份的热力图数据
func (s *AnalyticsService) Heatmap(year int) ([]analytics.HeatmapDay, error) {
	if year < minHeatmapYear || year > maxHeatmapYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	entries, err := s.tracking.ListYear(year)
	if err != nil {
		return nil, err
	}

	return analytics.Heatmap(db.Records(entries), year), nil
}

// MissingDates 返回最早记录到昨天之间缺失的日期
func (s *AnalyticsService) MissingDates(now time.Time) ([]string, error) {
	entries, err := s.tracking.All()
	if err != nil {
		return nil, err
	}

	return analytics.MissingDates(db.Records(entries), now), nil
}

// Matrix 返回最近 days 天的目标 × 日期矩阵
func (s *AnalyticsService) Matrix(days int, now time.Time) (analytics.Matrix, error) {
	if err := analytics.ValidateWindow(days); err != nil {
		return analytics.Matrix{}, err
	}

	entries, err := s.tracking.All()
	if err != nil {
		return analytics.Matrix{}, err
	}

	return analytics.BuildMatrix(db.Records(entries), days, now), nil
}
