package db

import "gorm.io/gorm"

// SystemSetting 存储可在运行时调整的键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeyWhatsAppTo 覆盖环境变量中的 WhatsApp 接收号码。
	SettingKeyWhatsAppTo = "whatsapp_to"
	// SettingKeyRemindersEnabled 控制每晚提醒是否发送。
	SettingKeyRemindersEnabled = "reminders_enabled"
)
