package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// NotificationKindReminder 每晚的打卡提醒
	NotificationKindReminder = "daily_reminder"
	// NotificationKindCelebration 连胜里程碑庆祝
	NotificationKindCelebration = "streak_celebration"

	NotificationStatusSent    = "sent"
	NotificationStatusSkipped = "skipped"
	NotificationStatusFailed  = "failed"
)

// NotificationLog 记录每一次外发消息的结果，便于排查提醒是否送达。
type NotificationLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind       string    `gorm:"size:32;index"`
	StreakDays int
	Recipient  string `gorm:"size:64"`
	Status     string `gorm:"size:16"`
	MessageSID string `gorm:"size:64"`
	Body       string `gorm:"type:text"`
	Error      string `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index"`
}

// TableName 自定义表名
func (NotificationLog) TableName() string {
	return "notification_logs"
}

// BeforeCreate 在缺省时生成 UUID 主键
func (n *NotificationLog) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
