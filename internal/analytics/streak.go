package analytics

import (
	"slices"
)

// StreakSet 记录每个布尔目标的当前连胜，以及全部完成的 perfect_day 连胜。
type StreakSet struct {
	Goals      map[string]int
	PerfectDay int
}

// Map 展开为 goal key -> 天数，并附带 perfect_day。
func (s StreakSet) Map() map[string]int {
	result := make(map[string]int, len(s.Goals)+1)
	for key, value := range s.Goals {
		result[key] = value
	}
	result[PerfectDay] = s.PerfectDay
	return result
}

// Streaks 从最近一条记录开始向前数连续满足目标的记录数，遇到第一条未完成即停止。
// 连续性按记录计算而非日历日：日期缺口不会打断连胜，只有明确未完成的记录才会。
func Streaks(records []Record) StreakSet {
	ordered := sortedDescending(records)

	set := StreakSet{Goals: make(map[string]int, len(goals))}
	for _, goal := range BooleanGoals() {
		set.Goals[goal.Key] = leadingRun(ordered, goal.Completed)
	}
	set.PerfectDay = leadingRun(ordered, Record.PerfectDay)

	return set
}

// LongestStreaks 返回历史上每个目标最长的连续完成记录数。
func LongestStreaks(records []Record) StreakSet {
	ordered := sortedDescending(records)

	set := StreakSet{Goals: make(map[string]int, len(goals))}
	for _, goal := range BooleanGoals() {
		set.Goals[goal.Key] = longestRun(ordered, goal.Completed)
	}
	set.PerfectDay = longestRun(ordered, Record.PerfectDay)

	return set
}

func leadingRun(ordered []Record, completed func(Record) bool) int {
	streak := 0
	for _, record := range ordered {
		if !completed(record) {
			break
		}
		streak++
	}
	return streak
}

func longestRun(ordered []Record, completed func(Record) bool) int {
	longest, current := 0, 0
	for _, record := range ordered {
		if !completed(record) {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

// sortedDescending 返回按日期倒序的副本，不修改调用方的切片。
func sortedDescending(records []Record) []Record {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b Record) int {
		return b.Date.Compare(a.Date)
	})
	return ordered
}
