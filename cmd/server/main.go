package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/handler"
	"github.com/habitlog/internal/router"
	"github.com/habitlog/internal/service"
)

// @title           Habit Tracker API
// @version         1.0
// @description     Daily habit tracking with streaks, overview percentages and heat maps
// @BasePath        /

func main() {
	cfg := config.Load()

	log.SetTimeFormat(time.Stamp)
	log.SetReportCaller(true)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath, cfg.DatabaseURL); err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}

	loc := cfg.Location()
	settings := service.NewSystemSettingService(db.DB, service.SystemSettings{
		WhatsAppTo:       cfg.WhatsAppTo,
		RemindersEnabled: cfg.RemindersEnabled,
	})

	var sender service.MessageSender
	if cfg.HasTwilioCredentials() {
		twilio := service.NewTwilioClient(service.TwilioCredentials{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioWhatsAppFrom,
		})
		twilio.SetBaseURL(cfg.TwilioAPIBaseURL)
		sender = twilio
		log.Info("twilio whatsapp client initialized")
	} else {
		log.Warn("twilio credentials not configured, whatsapp notifications disabled")
	}

	notifications := service.NewNotificationService(db.DB, sender, settings, cfg.BaseURL)
	api := handler.NewAPI(db.DB, settings, notifications, loc)

	scheduler, err := service.NewReminderScheduler(notifications, cfg.ReminderSchedule, loc)
	if err != nil {
		log.Fatal("failed to configure reminder scheduler", "error", err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, cfg.SessionSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.ListenAddr, "tz", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(ctx); err != nil {
		log.Warn("reminder scheduler did not stop cleanly", "error", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
