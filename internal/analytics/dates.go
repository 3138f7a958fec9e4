package analytics

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout 是全系统使用的规范日期格式。
const DateLayout = "2006-01-02"

// 可接受的输入格式：纯日期与若干带时间的格式，时间部分会被截断。
var acceptedDateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// ValidationError 表示调用方提供了无法解析的输入。
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid value %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseDate 将纯日期或带时间的字符串解析为 UTC 零点的日期。
// 带时区的时间取其自身的日历日期，不做时区换算。
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &ValidationError{Field: "date", Value: raw, Reason: "date is empty"}
	}

	for _, layout := range acceptedDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateOf(parsed), nil
		}
	}

	return time.Time{}, &ValidationError{Field: "date", Value: raw, Reason: "expected YYYY-MM-DD or a timestamp"}
}

// NormalizeDate 返回规范化后的 YYYY-MM-DD 字符串。
func NormalizeDate(raw string) (string, error) {
	date, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return date.Format(DateLayout), nil
}

// DateOf 截断时间部分，返回同一日历日的 UTC 零点。
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MissingDates 列出从最早记录到昨天（不含今天）之间没有记录的日期，升序。
func MissingDates(records []Record, today time.Time) []string {
	keys := make(map[string]struct{}, len(records))
	var earliest time.Time
	for i, record := range records {
		day := DateOf(record.Date)
		keys[day.Format(DateLayout)] = struct{}{}
		if i == 0 || day.Before(earliest) {
			earliest = day
		}
	}

	return missingBetween(keys, earliest, DateOf(today).AddDate(0, 0, -1))
}

// MissingDatesFromKeys 与 MissingDates 相同，但输入是原始日期字符串。
// 任意一个值无法解析都会返回 ValidationError。
func MissingDatesFromKeys(rawDates []string, today time.Time) ([]string, error) {
	keys := make(map[string]struct{}, len(rawDates))
	var earliest time.Time
	for i, raw := range rawDates {
		day, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		keys[day.Format(DateLayout)] = struct{}{}
		if i == 0 || day.Before(earliest) {
			earliest = day
		}
	}

	return missingBetween(keys, earliest, DateOf(today).AddDate(0, 0, -1)), nil
}

func missingBetween(present map[string]struct{}, start, end time.Time) []string {
	missing := []string{}
	if len(present) == 0 || end.Before(start) {
		return missing
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateLayout)
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
