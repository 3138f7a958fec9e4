package analytics

import (
	"slices"
	"strings"
)

// MaxHeatLevel 是热力图最高强度。
const MaxHeatLevel = 4

// HeatmapDay 是热力图中的单日数据。
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// HeatLevel 将完成数映射到 0..4：min(floor(count/3), 4)。
func HeatLevel(count int) int {
	if count <= 0 {
		return 0
	}
	return min(count/3, MaxHeatLevel)
}

// Heatmap 为 year 年内的每条记录生成一项，按日期升序。
// 没有记录的日期不会补零，由展示层自行填充整年网格。
func Heatmap(records []Record, year int) []HeatmapDay {
	days := make([]HeatmapDay, 0, len(records))
	for _, record := range records {
		if record.Date.Year() != year {
			continue
		}
		count := record.CompletedCount()
		days = append(days, HeatmapDay{
			Date:  record.DateKey(),
			Count: count,
			Level: HeatLevel(count),
		})
	}

	slices.SortFunc(days, func(a, b HeatmapDay) int {
		return strings.Compare(a.Date, b.Date)
	})
	return days
}
