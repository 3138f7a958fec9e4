package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/habitlog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SystemSettings 描述运行时可调整的通知设置。
type SystemSettings struct {
	WhatsAppTo       string
	RemindersEnabled bool
}

// SystemSettingsInput 用于更新通知设置。
type SystemSettingsInput struct {
	WhatsAppTo       string
	RemindersEnabled bool
}

// SystemSettingService 提供系统设置的读取与更新能力，未落库的项使用构造时传入的默认值。
type SystemSettingService struct {
	db       *gorm.DB
	defaults SystemSettings
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB, defaults SystemSettings) *SystemSettingService {
	defaults.WhatsAppTo = normalizeWhatsAppAddress(defaults.WhatsAppTo)
	return &SystemSettingService{db: gdb, defaults: defaults}
}

var settingKeys = []string{
	db.SettingKeyWhatsAppTo,
	db.SettingKeyRemindersEnabled,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := s.defaults

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeyWhatsAppTo:
			if value := normalizeWhatsAppAddress(record.Value); value != "" {
				result.WhatsAppTo = value
			}
		case db.SettingKeyRemindersEnabled:
			if enabled, err := strconv.ParseBool(strings.TrimSpace(record.Value)); err == nil {
				result.RemindersEnabled = enabled
			}
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置；接收号码留空时恢复为环境变量中的默认号码。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	stored := SystemSettings{
		WhatsAppTo:       normalizeWhatsAppAddress(input.WhatsAppTo),
		RemindersEnabled: input.RemindersEnabled,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeyWhatsAppTo, stored.WhatsAppTo); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyRemindersEnabled, strconv.FormatBool(stored.RemindersEnabled))
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	if stored.WhatsAppTo == "" {
		stored.WhatsAppTo = s.defaults.WhatsAppTo
	}
	return stored, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

// normalizeWhatsAppAddress 统一为 "whatsapp:+号码" 形式，空值保持为空。
func normalizeWhatsAppAddress(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	number := strings.TrimSpace(strings.TrimPrefix(trimmed, "whatsapp:"))
	if number == "" {
		return ""
	}
	return "whatsapp:" + number
}
