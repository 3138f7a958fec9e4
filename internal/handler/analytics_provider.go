package handler

import (
	"context"
	"time"

	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/service"
)

type analyticsProvider interface {
	Overview(days int, now time.Time) (analytics.Overview, error)
	Streaks() (service.StreakReport, error)
	Heatmap(year int) ([]analytics.HeatmapDay, error)
	MissingDates(now time.Time) ([]string, error)
	Matrix(days int, now time.Time) (analytics.Matrix, error)
}

type notificationProvider interface {
	SendDailyReminder(ctx context.Context) error
	Recent(limit int) ([]db.NotificationLog, error)
}

type noopNotificationProvider struct{}

func (noopNotificationProvider) SendDailyReminder(context.Context) error { return nil }

func (noopNotificationProvider) Recent(int) ([]db.NotificationLog, error) {
	return []db.NotificationLog{}, nil
}
