package router

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/habitlog/docs"
	"github.com/habitlog/internal/handler"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger())

	// 配置会话中间件，用于记住概览页选择的时间窗口
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 30 * 24 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions("habitlog_session", store))

	r.GET("/health", api.HealthCheck)

	apiGroup := r.Group("/api")
	{
		tracking := apiGroup.Group("/tracking")
		tracking.GET("/today", api.GetToday)
		tracking.POST("/submit", api.SubmitEntry)
		tracking.GET("/history", api.GetHistory)
		tracking.GET("/entries/:date", api.GetEntry)
		tracking.GET("/missing", api.GetMissingDates)

		analytics := apiGroup.Group("/analytics")
		analytics.GET("/overview", api.GetOverview)
		analytics.GET("/streaks", api.GetStreaks)
		analytics.GET("/heatmap", api.GetHeatmap)
		analytics.GET("/heatmap.png", api.GetHeatmapImage)
		analytics.GET("/matrix", api.GetMatrix)

		apiGroup.GET("/settings", api.GetSystemSettings)
		apiGroup.PUT("/settings", api.UpdateSystemSettings)

		apiGroup.POST("/notifications/reminder", api.TriggerReminder)
		apiGroup.GET("/notifications", api.ListNotifications)
	}

	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	)))

	return r
}

// requestID 为每个请求分配 X-Request-ID，客户端传入的合法 UUID 原样透传
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}
