package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/service"
)

// HealthCheck 提供部署平台与监控系统使用的健康检查端点。
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (a *API) HealthCheck(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "error",
			"message":   "database handle unavailable",
			"timestamp": timestamp,
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "database unreachable",
			"timestamp": timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "up",
		"timestamp": timestamp,
	})
}

type systemSettingsRequest struct {
	WhatsAppTo       string `json:"whatsapp_to"`
	RemindersEnabled *bool  `json:"reminders_enabled"`
}

// GetSystemSettings 返回当前通知设置。
// @Summary Notification settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/settings [get]
func (a *API) GetSystemSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": systemSettingsPayload(settings)})
}

// UpdateSystemSettings 保存通知设置。
// @Summary Update notification settings
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/settings [put]
func (a *API) UpdateSystemSettings(c *gin.Context) {
	var payload systemSettingsRequest
	if !bindJSON(c, &payload, "Invalid settings payload") {
		return
	}
	if payload.RemindersEnabled == nil {
		respondError(c, http.StatusBadRequest, "reminders_enabled is required")
		return
	}

	settings, err := a.settings.UpdateSettings(service.SystemSettingsInput{
		WhatsAppTo:       payload.WhatsAppTo,
		RemindersEnabled: *payload.RemindersEnabled,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings saved",
		"settings": systemSettingsPayload(settings),
	})
}

func systemSettingsPayload(settings service.SystemSettings) gin.H {
	return gin.H{
		"whatsapp_to":       settings.WhatsAppTo,
		"reminders_enabled": settings.RemindersEnabled,
	}
}
