package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/service"
)

type entryPayload struct {
	ID               uint    `json:"id,omitempty"`
	EntryDate        string  `json:"entry_date"`
	BedBefore11PM    bool    `json:"bed_before_11pm"`
	EightHoursSleep  bool    `json:"eight_hours_sleep"`
	WakeBy730AM      bool    `json:"wake_by_730am"`
	Workout          bool    `json:"workout"`
	TenKSteps        bool    `json:"ten_k_steps"`
	ReadInvesting    bool    `json:"read_investing"`
	ReadFinance      bool    `json:"read_finance"`
	ReadCrypto       bool    `json:"read_crypto"`
	PlayWithAI       bool    `json:"play_with_ai"`
	ReadingBooks     bool    `json:"reading_books"`
	PostedTwitter    bool    `json:"posted_twitter"`
	PostedLinkedIn   bool    `json:"posted_linkedin"`
	PersonReachedOut string  `json:"person_reached_out"`
	CompletedCount   int     `json:"completed_count"`
	CreatedAt        *string `json:"created_at,omitempty"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

type submitRequest struct {
	EntryDate        string `json:"entry_date"`
	BedBefore11PM    bool   `json:"bed_before_11pm"`
	EightHoursSleep  bool   `json:"eight_hours_sleep"`
	WakeBy730AM      bool   `json:"wake_by_730am"`
	Workout          bool   `json:"workout"`
	TenKSteps        bool   `json:"ten_k_steps"`
	ReadInvesting    bool   `json:"read_investing"`
	ReadFinance      bool   `json:"read_finance"`
	ReadCrypto       bool   `json:"read_crypto"`
	PlayWithAI       bool   `json:"play_with_ai"`
	ReadingBooks     bool   `json:"reading_books"`
	PostedTwitter    bool   `json:"posted_twitter"`
	PostedLinkedIn   bool   `json:"posted_linkedin"`
	PersonReachedOut string `json:"person_reached_out"`
}

// GetToday 返回今天的记录，未提交时返回全部为 false 的默认值
// @Summary Today's entry
// @Tags tracking
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/tracking/today [get]
func (a *API) GetToday(c *gin.Context) {
	entry, err := a.tracking.Today(a.today())
	if err != nil {
		log.Error("fetch today's entry", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch entry")
		return
	}

	c.JSON(http.StatusOK, newEntryPayload(entry))
}

// SubmitEntry 保存或覆盖某天的记录
// @Summary Submit or update a daily entry
// @Description entry_date is optional and defaults to today. Returns the saved entry and the number of active days through that date.
// @Tags tracking
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/tracking/submit [post]
func (a *API) SubmitEntry(c *gin.Context) {
	var payload submitRequest
	if !bindJSON(c, &payload, "Invalid entry payload") {
		return
	}

	date := analytics.DateOf(a.today())
	if strings.TrimSpace(payload.EntryDate) != "" {
		parsed, err := analytics.ParseDate(payload.EntryDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		date = parsed
	}

	result, err := a.tracking.Submit(c.Request.Context(), payload.toInput(date))
	if err != nil {
		log.Error("submit entry", "date", date.Format(analytics.DateLayout), "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to submit entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"entry":       newEntryPayload(result.Entry),
		"streak_days": result.StreakDays,
	})
}

// GetHistory 返回最近 N 条记录，日期倒序
// @Summary Recent entries
// @Tags tracking
// @Produce json
// @Param days query int false "Number of entries (default 30)"
// @Success 200 {array} map[string]interface{}
// @Router /api/tracking/history [get]
func (a *API) GetHistory(c *gin.Context) {
	days, _ := parseDaysQuery(c, service.DefaultHistoryLimit)
	if days < 0 {
		respondError(c, http.StatusBadRequest, "days must be positive")
		return
	}

	entries, err := a.tracking.History(days)
	if err != nil {
		log.Error("fetch history", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	c.JSON(http.StatusOK, newEntryPayloads(entries))
}

// GetEntry 返回指定日期的记录
// @Summary Entry by date
// @Tags tracking
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tracking/entries/{date} [get]
func (a *API) GetEntry(c *gin.Context) {
	date, err := analytics.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.tracking.Get(date)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "Entry not found")
			return
		}
		log.Error("fetch entry", "date", date.Format(analytics.DateLayout), "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch entry")
		return
	}

	c.JSON(http.StatusOK, newEntryPayload(entry))
}

// GetMissingDates 返回最早记录到昨天之间没有记录的日期
// @Summary Missing dates
// @Tags tracking
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/tracking/missing [get]
func (a *API) GetMissingDates(c *gin.Context) {
	dates, err := a.analytics.MissingDates(a.today())
	if err != nil {
		log.Error("fetch missing dates", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch missing dates")
		return
	}

	c.JSON(http.StatusOK, gin.H{"missing_dates": dates, "count": len(dates)})
}

func (r submitRequest) toInput(date time.Time) service.EntryInput {
	return service.EntryInput{
		EntryDate:        date,
		BedBefore11PM:    r.BedBefore11PM,
		EightHoursSleep:  r.EightHoursSleep,
		WakeBy730AM:      r.WakeBy730AM,
		Workout:          r.Workout,
		TenKSteps:        r.TenKSteps,
		ReadInvesting:    r.ReadInvesting,
		ReadFinance:      r.ReadFinance,
		ReadCrypto:       r.ReadCrypto,
		PlayWithAI:       r.PlayWithAI,
		ReadingBooks:     r.ReadingBooks,
		PostedTwitter:    r.PostedTwitter,
		PostedLinkedIn:   r.PostedLinkedIn,
		PersonReachedOut: r.PersonReachedOut,
	}
}

func newEntryPayload(entry *db.DailyEntry) entryPayload {
	payload := entryPayload{
		ID:               entry.ID,
		EntryDate:        entry.EntryDate.Format(analytics.DateLayout),
		BedBefore11PM:    entry.BedBefore11PM,
		EightHoursSleep:  entry.EightHoursSleep,
		WakeBy730AM:      entry.WakeBy730AM,
		Workout:          entry.Workout,
		TenKSteps:        entry.TenKSteps,
		ReadInvesting:    entry.ReadInvesting,
		ReadFinance:      entry.ReadFinance,
		ReadCrypto:       entry.ReadCrypto,
		PlayWithAI:       entry.PlayWithAI,
		ReadingBooks:     entry.ReadingBooks,
		PostedTwitter:    entry.PostedTwitter,
		PostedLinkedIn:   entry.PostedLinkedIn,
		PersonReachedOut: entry.PersonReachedOut,
		CompletedCount:   entry.Record().CompletedCount(),
	}
	if !entry.CreatedAt.IsZero() {
		created := entry.CreatedAt.UTC().Format(time.RFC3339)
		payload.CreatedAt = &created
	}
	if !entry.UpdatedAt.IsZero() {
		updated := entry.UpdatedAt.UTC().Format(time.RFC3339)
		payload.UpdatedAt = &updated
	}
	return payload
}

func newEntryPayloads(entries []db.DailyEntry) []entryPayload {
	payloads := make([]entryPayload, 0, len(entries))
	for i := range entries {
		payloads = append(payloads, newEntryPayload(&entries[i]))
	}
	return payloads
}
