package core

import "time"

// 各資源的查詢條件，零值欄位代表不過濾

type EmployeeFilter struct {
	Status EmployeeStatus
}

type ShiftFilter struct {
	EmployeeID string
	// Day 整天視窗 [00:00, 23:59:59.999]
	Day *time.Time
	// From date >= From
	From   *time.Time
	Status ShiftStatus
}

type AttendanceFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Status     AttendanceStatus
	Limit      int64
}

const AttendanceHistoryLimit int64 = 100
