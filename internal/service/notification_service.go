package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
	"gorm.io/gorm"
)

const defaultNotificationLimit = 20

// Notifier 是打卡流程依赖的通知能力。
type Notifier interface {
	SendDailyReminder(ctx context.Context) error
	SendStreakCelebration(ctx context.Context, streakDays int) error
}

// NoopNotifier 不发送任何消息。
type NoopNotifier struct{}

func (NoopNotifier) SendDailyReminder(context.Context) error { return nil }

func (NoopNotifier) SendStreakCelebration(context.Context, int) error { return nil }

// NotificationService 组装提醒与庆祝消息，通过 MessageSender 发出并落库 NotificationLog。
// sender 为 nil 时只记录 skipped，不会报错。
type NotificationService struct {
	db       *gorm.DB
	sender   MessageSender
	settings *SystemSettingService
	baseURL  string
}

// NewNotificationService 构造 NotificationService。
func NewNotificationService(gdb *gorm.DB, sender MessageSender, settings *SystemSettingService, baseURL string) *NotificationService {
	return &NotificationService{
		db:       gdb,
		sender:   sender,
		settings: settings,
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// ReminderMessage 返回每晚提醒的文案
func ReminderMessage(baseURL string) string {
	trackingURL := strings.TrimRight(baseURL, "/") + "/track"
	return "🌙 Good evening! Time for your daily check-in.\n\n" +
		"Click here to log today's activities:\n" +
		trackingURL + "\n\n" +
		"Track your progress and keep the streak alive! 💪"
}

// CelebrationMessage 返回连胜里程碑的文案
func CelebrationMessage(streakDays int) string {
	return fmt.Sprintf("🎉 AMAZING! You've hit a %d-day streak!\n\nKeep crushing your goals! 🚀", streakDays)
}

// SendDailyReminder 发送每晚提醒；设置中关闭提醒时记录为 skipped。
func (s *NotificationService) SendDailyReminder(ctx context.Context) error {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return err
	}

	entry := db.NotificationLog{
		Kind:      db.NotificationKindReminder,
		Recipient: settings.WhatsAppTo,
		Body:      ReminderMessage(s.baseURL),
	}

	if !settings.RemindersEnabled {
		entry.Status = db.NotificationStatusSkipped
		entry.Error = "reminders disabled"
		log.Info("daily reminder skipped", "reason", entry.Error)
		return s.record(&entry)
	}

	return s.deliver(ctx, &entry)
}

// SendStreakCelebration 仅在 streakDays 命中里程碑时发送庆祝消息。
func (s *NotificationService) SendStreakCelebration(ctx context.Context, streakDays int) error {
	if !analytics.IsMilestone(streakDays) {
		return nil
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return err
	}

	entry := db.NotificationLog{
		Kind:       db.NotificationKindCelebration,
		StreakDays: streakDays,
		Recipient:  settings.WhatsAppTo,
		Body:       CelebrationMessage(streakDays),
	}
	return s.deliver(ctx, &entry)
}

// Recent 返回最近的通知记录，按时间倒序
func (s *NotificationService) Recent(limit int) ([]db.NotificationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}

	var logs []db.NotificationLog
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return logs, nil
}

func (s *NotificationService) deliver(ctx context.Context, entry *db.NotificationLog) error {
	if s.sender == nil {
		entry.Status = db.NotificationStatusSkipped
		entry.Error = ErrSenderNotConfigured.Error()
		log.Warn("notification skipped, twilio not configured", "kind", entry.Kind)
		return s.record(entry)
	}

	sid, sendErr := s.sender.Send(ctx, entry.Recipient, entry.Body)
	switch {
	case errors.Is(sendErr, ErrSenderNotConfigured):
		entry.Status = db.NotificationStatusSkipped
		entry.Error = sendErr.Error()
		sendErr = nil
	case sendErr != nil:
		entry.Status = db.NotificationStatusFailed
		entry.Error = sendErr.Error()
	default:
		entry.Status = db.NotificationStatusSent
		entry.MessageSID = sid
		log.Info("notification sent", "kind", entry.Kind, "sid", sid, "streak_days", entry.StreakDays)
	}

	if err := s.record(entry); err != nil {
		return errors.Join(sendErr, err)
	}
	return sendErr
}

func (s *NotificationService) record(entry *db.NotificationLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}
