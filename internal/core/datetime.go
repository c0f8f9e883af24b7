package core

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// ParseDate 以 UTC 午夜解析 YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	if len(value) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: want %s", value, DateLayout)
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseDateTime 以 UTC 解析 YYYY-MM-DDTHH:MM；layout 的 15 接受單位數小時，先檢查長度
func ParseDateTime(value string) (time.Time, error) {
	if len(value) != len(DateTimeLayout) {
		return time.Time{}, fmt.Errorf("invalid datetime %q: want %s", value, DateTimeLayout)
	}
	t, err := time.ParseInLocation(DateTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: %w", value, err)
	}
	return t, nil
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the inclusive bounds of the UTC day containing t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = StartOfDay(t)
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
