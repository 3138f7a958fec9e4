package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habitlog/internal/analytics"
)

func TestOpenCreatesSQLiteFileAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habits.db")

	gdb, err := Open(path, "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file to exist: %v", err)
	}

	for _, table := range []string{"daily_entries", "notification_logs", "system_settings"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to be migrated", table)
		}
	}
}

func TestEnsureParentDirRejectsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	if err := ensureParentDir(filepath.Join(blocker, "habits.db")); err == nil {
		t.Fatal("expected error when parent is a regular file")
	}
	if err := ensureParentDir("file:memdb?mode=memory"); err != nil {
		t.Fatalf("expected memory dsn to be skipped, got %v", err)
	}
}

func TestDailyEntryRecord(t *testing.T) {
	entry := DailyEntry{
		EntryDate:        time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Workout:          true,
		PostedLinkedIn:   true,
		PersonReachedOut: "  ",
	}

	record := entry.Record()
	if record.DateKey() != "2026-01-02" {
		t.Fatalf("unexpected date key %s", record.DateKey())
	}
	if record.CompletedCount() != 2 {
		t.Fatalf("expected whitespace reach-out to be incomplete, got %d goals", record.CompletedCount())
	}

	if len(GoalColumns) != len(analytics.Goals()) {
		t.Fatalf("expected a column per goal, got %d columns for %d goals", len(GoalColumns), len(analytics.Goals()))
	}
	for i, goal := range analytics.Goals() {
		if GoalColumns[i] != goal.Key {
			t.Fatalf("column %d: expected %s, got %s", i, goal.Key, GoalColumns[i])
		}
	}
}

func TestNotificationLogAssignsUUID(t *testing.T) {
	gdb, err := Open("file:notification-log?mode=memory&cache=shared", "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	entry := NotificationLog{Kind: NotificationKindReminder, Status: NotificationStatusSkipped}
	if err := gdb.Create(&entry).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var loaded NotificationLog
	if err := gdb.First(&loaded, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.ID != entry.ID || loaded.Kind != NotificationKindReminder {
		t.Fatalf("unexpected reloaded log %+v", loaded)
	}
}
