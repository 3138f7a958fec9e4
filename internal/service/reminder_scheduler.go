package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// DefaultReminderSchedule 每天 22:00 发送提醒
const DefaultReminderSchedule = "0 22 * * *"

// ReminderScheduler 按 cron 表达式定时触发每晚提醒。
type ReminderScheduler struct {
	cron     *cron.Cron
	notifier Notifier
	entryID  cron.EntryID
	timeout  time.Duration
}

// NewReminderScheduler 解析 schedule 并注册任务，表达式非法时返回错误。
func NewReminderScheduler(notifier Notifier, schedule string, loc *time.Location) (*ReminderScheduler, error) {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}

	s := &ReminderScheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		notifier: notifier,
		timeout:  time.Minute,
	}

	id, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.RunNow(ctx); err != nil {
			log.Error("scheduled reminder failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	s.entryID = id

	return s, nil
}

// Start 启动调度器（非阻塞）
func (s *ReminderScheduler) Start() {
	s.cron.Start()
	log.Info("reminder scheduler started", "next", s.Next())
}

// Stop 停止调度并等待正在执行的任务结束或 ctx 超时。
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow 立即触发一次提醒
func (s *ReminderScheduler) RunNow(ctx context.Context) error {
	log.Info("sending daily reminder")
	return s.notifier.SendDailyReminder(ctx)
}

// Next 返回下一次触发时间，调度器未启动时为零值。
func (s *ReminderScheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}
