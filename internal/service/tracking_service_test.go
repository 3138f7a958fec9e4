package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/habitlog/internal/analytics"
)

func TestTrackingServiceTodayDefaultsWhenMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	now := time.Date(2026, 3, 5, 21, 30, 0, 0, time.UTC)
	entry, err := svc.Today(now)
	if err != nil {
		t.Fatalf("today failed: %v", err)
	}
	if entry.ID != 0 {
		t.Fatalf("expected unsaved default entry, got id %d", entry.ID)
	}
	if got := entry.EntryDate.Format(analytics.DateLayout); got != "2026-03-05" {
		t.Fatalf("unexpected entry date %s", got)
	}
	if entry.Record().CompletedCount() != 0 {
		t.Fatal("expected default entry to have no completed goals")
	}
}

func TestTrackingServiceUpsertOverwrites(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)
	date := mustDate(t, "2026-01-01")

	first, err := svc.Upsert(EntryInput{EntryDate: date, Workout: true, ReadCrypto: true, PersonReachedOut: "Alice"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.Upsert(EntryInput{EntryDate: date, TenKSteps: true})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same row to be updated, got ids %d and %d", first.ID, second.ID)
	}
	if second.Workout || second.ReadCrypto || second.PersonReachedOut != "" {
		t.Fatalf("expected last write to win, got %+v", second)
	}
	if !second.TenKSteps {
		t.Fatal("expected ten_k_steps to be stored")
	}

	var count int64
	gdb.Table("daily_entries").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row per date, got %d", count)
	}
}

func TestTrackingServiceSanitizesReachedOut(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	entry, err := svc.Upsert(EntryInput{
		EntryDate:        mustDate(t, "2026-01-02"),
		PersonReachedOut: "  <script>alert(1)</script><b>Bob</b> & Carol ",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if entry.PersonReachedOut != "Bob & Carol" {
		t.Fatalf("unexpected sanitized value %q", entry.PersonReachedOut)
	}
}

func TestTrackingServiceStripsEntityEncodedMarkup(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	tests := []struct {
		input string
		want  string
	}{
		{input: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{input: "&lt;b&gt;Dana&lt;/b&gt;", want: "Dana"},
		{input: "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;Eli", want: "Eli"},
		{input: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{input: "a &lt; b", want: "a < b"},
	}

	for _, tt := range tests {
		entry, err := svc.Upsert(EntryInput{EntryDate: mustDate(t, "2026-01-03"), PersonReachedOut: tt.input})
		if err != nil {
			t.Fatalf("upsert %q failed: %v", tt.input, err)
		}
		if entry.PersonReachedOut != tt.want {
			t.Fatalf("sanitize %q: expected %q, got %q", tt.input, tt.want, entry.PersonReachedOut)
		}
		if strings.Contains(entry.PersonReachedOut, "<script") || strings.Contains(entry.PersonReachedOut, "<b>") {
			t.Fatalf("sanitize %q left markup %q", tt.input, entry.PersonReachedOut)
		}
	}
}

func TestTrackingServiceGetMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	if _, err := svc.Get(mustDate(t, "2026-01-01")); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestTrackingServiceListings(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	for _, date := range []string{"2025-12-30", "2026-01-02", "2026-01-01", "2026-01-05"} {
		if _, err := svc.Upsert(EntryInput{EntryDate: mustDate(t, date), Workout: true}); err != nil {
			t.Fatalf("upsert %s failed: %v", date, err)
		}
	}

	history, err := svc.History(2)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 || history[0].EntryDate.Format(analytics.DateLayout) != "2026-01-05" || history[1].EntryDate.Format(analytics.DateLayout) != "2026-01-02" {
		t.Fatalf("unexpected history order: %+v", history)
	}

	since, err := svc.ListSince(mustDate(t, "2026-01-01"))
	if err != nil {
		t.Fatalf("list since failed: %v", err)
	}
	if len(since) != 3 {
		t.Fatalf("expected inclusive lower bound with 3 entries, got %d", len(since))
	}

	year, err := svc.ListYear(2026)
	if err != nil {
		t.Fatalf("list year failed: %v", err)
	}
	if len(year) != 3 || year[0].EntryDate.Format(analytics.DateLayout) != "2026-01-01" {
		t.Fatalf("unexpected year listing: %+v", year)
	}

	all, err := svc.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 4 || all[3].EntryDate.Format(analytics.DateLayout) != "2025-12-30" {
		t.Fatalf("unexpected full listing: %+v", all)
	}

	if _, err := svc.ListBetween(mustDate(t, "2026-02-01"), mustDate(t, "2026-01-01")); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestTrackingServiceActiveDaysThrough(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTrackingService(gdb, nil)

	inputs := []EntryInput{
		{EntryDate: mustDate(t, "2026-01-01"), Workout: true},
		{EntryDate: mustDate(t, "2026-01-02")},
		{EntryDate: mustDate(t, "2026-01-03"), PersonReachedOut: "Dana"},
		{EntryDate: mustDate(t, "2026-01-04"), PostedLinkedIn: true},
	}
	for _, input := range inputs {
		if _, err := svc.Upsert(input); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	days, err := svc.ActiveDaysThrough(mustDate(t, "2026-01-03"))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if days != 2 {
		t.Fatalf("expected 2 active days through 01-03, got %d", days)
	}

	days, err = svc.ActiveDaysThrough(mustDate(t, "2026-01-04"))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 active days through 01-04, got %d", days)
	}
}

func TestTrackingServiceSubmitCelebratesWithActiveDays(t *testing.T) {
	gdb := setupServiceTestDB(t)
	notifier := &countingNotifier{err: errors.New("twilio down")}
	svc := NewTrackingService(gdb, notifier)

	start := mustDate(t, "2026-01-01")
	var last *SubmitResult
	for i := range 7 {
		result, err := svc.Submit(context.Background(), EntryInput{EntryDate: start.AddDate(0, 0, i), Workout: true})
		if err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		last = result
	}

	if last.StreakDays != 7 {
		t.Fatalf("expected streak days 7, got %d", last.StreakDays)
	}
	if len(notifier.celebrations) != 7 || notifier.celebrations[6] != 7 {
		t.Fatalf("expected notifier called with running counts, got %v", notifier.celebrations)
	}
	if last.Entry == nil || !last.Entry.Workout {
		t.Fatalf("expected saved entry in result, got %+v", last.Entry)
	}
}
