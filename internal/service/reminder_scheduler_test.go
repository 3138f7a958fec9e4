package service

import (
	"context"
	"testing"
	"time"
)

func TestReminderSchedulerRejectsInvalidSchedule(t *testing.T) {
	if _, err := NewReminderScheduler(NoopNotifier{}, "not a cron", time.UTC); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestReminderSchedulerRunNowAndNext(t *testing.T) {
	notifier := &countingNotifier{}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	scheduler, err := NewReminderScheduler(notifier, "", loc)
	if err != nil {
		t.Fatalf("new scheduler failed: %v", err)
	}

	if err := scheduler.RunNow(context.Background()); err != nil {
		t.Fatalf("run now failed: %v", err)
	}
	if notifier.reminders != 1 {
		t.Fatalf("expected 1 reminder, got %d", notifier.reminders)
	}

	scheduler.Start()
	next := scheduler.Next().In(loc)
	if next.IsZero() || next.Hour() != 22 || next.Minute() != 0 {
		t.Fatalf("expected next run at 22:00 local, got %v", next)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := scheduler.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
