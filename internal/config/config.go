package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabasePath     string
	DatabaseURL      string
	SessionSecret    string
	GinMode          string
	LogLevel         string
	TimeZone         string
	ReminderSchedule string
	RemindersEnabled bool
	BaseURL          string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
	TwilioAPIBaseURL   string
	WhatsAppTo         string
}

// Load 从环境变量（以及可选的 .env 文件）读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	_ = godotenv.Load()

	port := env("PORT", "3000")

	return AppConfig{
		ListenAddr:         env("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:               port,
		DatabasePath:       env("DATABASE_PATH", "habits.db"),
		DatabaseURL:        env("DATABASE_URL", ""),
		SessionSecret:      env("SESSION_SECRET", "habitlog-dev-secret"),
		GinMode:            env("GIN_MODE", "release"),
		LogLevel:           env("LOG_LEVEL", "info"),
		TimeZone:           env("TZ", "America/New_York"),
		ReminderSchedule:   env("REMINDER_SCHEDULE", "0 22 * * *"),
		RemindersEnabled:   envBool("REMINDERS_ENABLED", true),
		BaseURL:            strings.TrimRight(env("BASE_URL", "http://localhost:3000"), "/"),
		TwilioAccountSID:   env("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    env("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: env("TWILIO_WHATSAPP_FROM", ""),
		TwilioAPIBaseURL:   env("TWILIO_API_BASE_URL", "https://api.twilio.com"),
		WhatsAppTo:         env("WHATSAPP_TO", ""),
	}
}

// Location 解析 TZ，无法识别时回退到 UTC。
func (c AppConfig) Location() *time.Location {
	if strings.TrimSpace(c.TimeZone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Warn("unknown TZ, using UTC", "tz", c.TimeZone, "error", err)
		return time.UTC
	}
	return loc
}

// HasTwilioCredentials 判断是否配置了可用的 Twilio 凭据，placeholder 视为未配置。
func (c AppConfig) HasTwilioCredentials() bool {
	return c.TwilioAccountSID != "" &&
		c.TwilioAuthToken != "" &&
		c.TwilioAccountSID != "placeholder"
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
