package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/analytics"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	heatCellSize   = 11
	heatCellGap    = 3
	heatLeftMargin = 32
	heatTopMargin  = 22
	heatPadding    = 10
	maxHeatScale   = 4
)

var (
	heatBackground = color.NRGBA{R: 10, G: 14, B: 39, A: 255}
	heatLabelColor = color.NRGBA{R: 160, G: 174, B: 192, A: 255}

	// 与前端热力图的五档透明度一致
	heatLevelColors = [analytics.MaxHeatLevel + 1]color.NRGBA{
		{R: 30, G: 39, B: 73, A: 77},
		{R: 100, G: 181, B: 246, A: 77},
		{R: 100, G: 181, B: 246, A: 128},
		{R: 100, G: 181, B: 246, A: 179},
		{R: 100, G: 181, B: 246, A: 255},
	}

	heatMonthLabels   = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	heatWeekdayLabels = map[time.Weekday]string{time.Monday: "Mon", time.Wednesday: "Wed", time.Friday: "Fri"}
)

// GetHeatmapImage 渲染整年的热力图 PNG
// @Summary Heat map as PNG
// @Tags analytics
// @Produce png
// @Param year query int false "Calendar year (default current year)"
// @Param scale query int false "Pixel scale 1-4 (default 1)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/analytics/heatmap.png [get]
func (a *API) GetHeatmapImage(c *gin.Context) {
	year := a.yearQuery(c)

	scale := 1
	if raw := c.Query("scale"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHeatScale {
			respondError(c, http.StatusBadRequest, "scale must be between 1 and 4")
			return
		}
		scale = parsed
	}

	days, err := a.analytics.Heatmap(year)
	if err != nil {
		a.respondAnalyticsError(c, err, "Failed to fetch heatmap data")
		return
	}

	var buf bytes.Buffer
	if err := renderHeatmapPNG(&buf, year, days, scale); err != nil {
		log.Error("render heatmap", "year", year, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to render heatmap")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// renderHeatmapPNG 按周为列、星期为行绘制 GitHub 风格的年度网格，周日在第一行。
func renderHeatmapPNG(w io.Writer, year int, days []analytics.HeatmapDay, scale int) error {
	levels := make(map[string]int, len(days))
	for _, day := range days {
		levels[day.Date] = day.Level
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	offset := int(start.Weekday())
	totalDays := int(end.Sub(start).Hours() / 24)
	weeks := (offset + totalDays + 6) / 7

	step := heatCellSize + heatCellGap
	width := heatLeftMargin + weeks*step + heatPadding
	height := heatTopMargin + 7*step + heatPadding

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(heatBackground), image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(heatLabelColor), Face: basicfont.Face7x13}
	for weekday, label := range heatWeekdayLabels {
		y := heatTopMargin + int(weekday)*step + heatCellSize - 1
		drawer.Dot = fixed.P(2, y)
		drawer.DrawString(label)
	}

	for current := start; current.Before(end); current = current.AddDate(0, 0, 1) {
		index := offset + current.YearDay() - 1
		column, row := index/7, index%7
		x := heatLeftMargin + column*step
		y := heatTopMargin + row*step

		if current.Day() == 1 {
			drawer.Dot = fixed.P(x, heatTopMargin-8)
			drawer.DrawString(heatMonthLabels[current.Month()-1])
		}

		level := min(max(levels[current.Format(analytics.DateLayout)], 0), analytics.MaxHeatLevel)
		cell := image.Rect(x, y, x+heatCellSize, y+heatCellSize)
		draw.Draw(canvas, cell, image.NewUniform(heatLevelColors[level]), image.Point{}, draw.Over)
	}

	var out image.Image = canvas
	if scale > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, width*scale, height*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
		out = scaled
	}

	return png.Encode(w, out)
}
