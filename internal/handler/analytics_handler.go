package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/service"
)

const overviewDaysSessionKey = "overview_days"

// GetOverview 返回时间窗口内各目标的完成次数与百分比
// @Summary Completion overview
// @Description days must be one of 7, 30, 90, 365. Without days, the last window requested in this session is used (default 30).
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/analytics/overview [get]
func (a *API) GetOverview(c *gin.Context) {
	days, explicit := parseDaysQuery(c, analytics.DefaultWindowDays)

	session := sessions.Default(c)
	if !explicit {
		if stored, ok := session.Get(overviewDaysSessionKey).(int); ok && analytics.ValidateWindow(stored) == nil {
			days = stored
		}
	}

	overview, err := a.analytics.Overview(days, a.today())
	if err != nil {
		a.respondAnalyticsError(c, err, "Failed to fetch analytics")
		return
	}

	if explicit {
		session.Set(overviewDaysSessionKey, days)
		if err := session.Save(); err != nil {
			log.Warn("save overview window", "error", err)
		}
	}

	c.JSON(http.StatusOK, overviewPayload(overview))
}

// GetStreaks 返回每个目标的当前连胜以及历史最长连胜
// @Summary Current streaks
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/analytics/streaks [get]
func (a *API) GetStreaks(c *gin.Context) {
	report, err := a.analytics.Streaks()
	if err != nil {
		a.respondAnalyticsError(c, err, "Failed to calculate streaks")
		return
	}

	payload := gin.H{}
	for key, value := range report.Current.Map() {
		payload[key] = value
	}
	payload["longest"] = report.Longest.Map()

	c.JSON(http.StatusOK, payload)
}

// GetHeatmap 返回指定年份每条记录的完成数与强度等级
// @Summary Heat map data
// @Tags analytics
// @Produce json
// @Param year query int false "Calendar year (default current year)"
// @Success 200 {array} analytics.HeatmapDay
// @Failure 400 {object} map[string]string
// @Router /api/analytics/heatmap [get]
func (a *API) GetHeatmap(c *gin.Context) {
	year := a.yearQuery(c)

	days, err := a.analytics.Heatmap(year)
	if err != nil {
		a.respondAnalyticsError(c, err, "Failed to fetch heatmap data")
		return
	}

	c.JSON(http.StatusOK, days)
}

// GetMatrix 返回目标 × 日期的完成矩阵
// @Summary Goal by date matrix
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days (7, 30, 90, 365)"
// @Success 200 {object} analytics.Matrix
// @Failure 400 {object} map[string]string
// @Router /api/analytics/matrix [get]
func (a *API) GetMatrix(c *gin.Context) {
	days, _ := parseDaysQuery(c, analytics.DefaultWindowDays)

	matrix, err := a.analytics.Matrix(days, a.today())
	if err != nil {
		a.respondAnalyticsError(c, err, "Failed to fetch matrix")
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// yearQuery 解析 year 参数：缺省或非数字时使用当前年份，范围由 AnalyticsService 校验。
func (a *API) yearQuery(c *gin.Context) int {
	year := a.today().Year()
	parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || parsed == 0 {
		return year
	}
	return parsed
}

func (a *API) respondAnalyticsError(c *gin.Context, err error, message string) {
	var validation *analytics.ValidationError
	switch {
	case errors.Is(err, analytics.ErrInvalidWindow),
		errors.Is(err, service.ErrInvalidYear),
		errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error(message, "error", err)
		respondError(c, http.StatusInternalServerError, message)
	}
}

func overviewPayload(overview analytics.Overview) gin.H {
	sleep := gin.H{}
	activities := gin.H{}
	for _, goal := range analytics.Goals() {
		stat := overview.Goals[goal.Key]
		if goal.Category == analytics.CategorySleep {
			sleep[goal.Key] = stat
			continue
		}
		activities[goal.Key] = stat
	}

	return gin.H{
		"period_days":         overview.PeriodDays,
		"total_entries":       overview.TotalEntries,
		"sleep_goals":         sleep,
		"activities":          activities,
		"four_daily_complete": overview.CoreComplete,
	}
}
