package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)

type analyticsStub struct {
	overviewDays []int
	heatmapYear  int
	matrixDays   int
	err          error
	streaks      service.StreakReport
	heatmap      []analytics.HeatmapDay
}

func (a *analyticsStub) Overview(days int, _ time.Time) (analytics.Overview, error) {
	a.overviewDays = append(a.overviewDays, days)
	if err := analytics.ValidateWindow(days); err != nil {
		return analytics.Overview{}, err
	}
	if a.err != nil {
		return analytics.Overview{}, a.err
	}
	return analytics.BuildOverview(nil, days, fixedNow), nil
}

func (a *analyticsStub) Streaks() (service.StreakReport, error) {
	return a.streaks, a.err
}

func (a *analyticsStub) Heatmap(year int) ([]analytics.HeatmapDay, error) {
	a.heatmapYear = year
	if a.err != nil {
		return nil, a.err
	}
	return a.heatmap, nil
}

func (a *analyticsStub) MissingDates(time.Time) ([]string, error) {
	return []string{}, a.err
}

func (a *analyticsStub) Matrix(days int, now time.Time) (analytics.Matrix, error) {
	a.matrixDays = days
	if err := analytics.ValidateWindow(days); err != nil {
		return analytics.Matrix{}, err
	}
	return analytics.BuildMatrix(nil, days, now), a.err
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

// newTestAPI 使用真实的 sqlite 存储与固定时钟构造 API。
func newTestAPI(t *testing.T) *API {
	t.Helper()
	gdb := setupHandlerTestDB(t)
	settings := service.NewSystemSettingService(gdb, service.SystemSettings{RemindersEnabled: true})
	api := NewAPI(gdb, settings, nil, time.UTC)
	api.now = func() time.Time { return fixedNow }
	return api
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("habitlog_session", cookie.NewStore([]byte("test-secret"))))
	return router
}

func performJSON(t *testing.T, router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}
