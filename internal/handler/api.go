package handler

import (
	"time"

	"github.com/habitlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	tracking      *service.TrackingService
	analytics     analyticsProvider
	settings      *service.SystemSettingService
	notifications notificationProvider
	location      *time.Location
	now           func() time.Time
}

// NewAPI constructs a handler set with shared services.
// notifications may be nil, in which case celebrations and reminders are no-ops.
func NewAPI(gdb *gorm.DB, settings *service.SystemSettingService, notifications *service.NotificationService, loc *time.Location) *API {
	if loc == nil {
		loc = time.UTC
	}

	var notifier service.Notifier = service.NoopNotifier{}
	var provider notificationProvider = noopNotificationProvider{}
	if notifications != nil {
		notifier = notifications
		provider = notifications
	}

	tracking := service.NewTrackingService(gdb, notifier)

	return &API{
		db:            gdb,
		tracking:      tracking,
		analytics:     service.NewAnalyticsService(tracking),
		settings:      settings,
		notifications: provider,
		location:      loc,
		now:           time.Now,
	}
}

// today 返回配置时区下的当前时间，日期计算都以它为准。
func (a *API) today() time.Time {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	loc := a.location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}
