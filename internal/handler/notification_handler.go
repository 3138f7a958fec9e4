package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/db"
)

type notificationPayload struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	StreakDays int    `json:"streak_days,omitempty"`
	Recipient  string `json:"recipient"`
	Status     string `json:"status"`
	MessageSID string `json:"message_sid,omitempty"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// TriggerReminder 立即发送一次每晚提醒
// @Summary Send the daily reminder now
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /api/notifications/reminder [post]
func (a *API) TriggerReminder(c *gin.Context) {
	if err := a.notifications.SendDailyReminder(c.Request.Context()); err != nil {
		log.Error("manual reminder failed", "error", err)
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListNotifications 返回最近的通知发送记录
// @Summary Recent notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications [get]
func (a *API) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := a.notifications.Recent(limit)
	if err != nil {
		log.Error("list notifications", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	items := make([]notificationPayload, 0, len(logs))
	for _, entry := range logs {
		items = append(items, newNotificationPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

func newNotificationPayload(entry db.NotificationLog) notificationPayload {
	return notificationPayload{
		ID:         entry.ID.String(),
		Kind:       entry.Kind,
		StreakDays: entry.StreakDays,
		Recipient:  entry.Recipient,
		Status:     entry.Status,
		MessageSID: entry.MessageSID,
		Error:      entry.Error,
		CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
