package config

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "DATABASE_PATH", "DATABASE_URL", "TZ", "REMINDER_SCHEDULE", "REMINDERS_ENABLED", "BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3000" || cfg.ListenAddr != ":3000" {
		t.Fatalf("unexpected listen config: port=%s addr=%s", cfg.Port, cfg.ListenAddr)
	}
	if cfg.DatabasePath != "habits.db" {
		t.Fatalf("unexpected database path %s", cfg.DatabasePath)
	}
	if cfg.ReminderSchedule != "0 22 * * *" {
		t.Fatalf("unexpected reminder schedule %s", cfg.ReminderSchedule)
	}
	if !cfg.RemindersEnabled {
		t.Fatal("expected reminders enabled by default")
	}
	if cfg.TimeZone != "America/New_York" {
		t.Fatalf("unexpected time zone %s", cfg.TimeZone)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("REMINDERS_ENABLED", "false")
	t.Setenv("BASE_URL", "https://habits.example.com/")

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr :9090, got %s", cfg.ListenAddr)
	}
	if cfg.RemindersEnabled {
		t.Fatal("expected reminders disabled")
	}
	if cfg.BaseURL != "https://habits.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.BaseURL)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := AppConfig{TimeZone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", cfg.Location())
	}
	if !strings.Contains(buf.String(), "unknown TZ") || !strings.Contains(buf.String(), "Not/AZone") {
		t.Fatalf("expected warning for unknown TZ, got %q", buf.String())
	}

	cfg.TimeZone = "UTC"
	if cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %v", cfg.Location())
	}
}

func TestHasTwilioCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  AppConfig
		want bool
	}{
		{name: "missing", cfg: AppConfig{}, want: false},
		{name: "placeholder", cfg: AppConfig{TwilioAccountSID: "placeholder", TwilioAuthToken: "x"}, want: false},
		{name: "token missing", cfg: AppConfig{TwilioAccountSID: "AC123"}, want: false},
		{name: "configured", cfg: AppConfig{TwilioAccountSID: "AC123", TwilioAuthToken: "secret"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasTwilioCredentials(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
