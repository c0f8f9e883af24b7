package dto

import (
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/pkg/request"
)

type MarkAttendanceDto struct {
	EmployeeID string                `json:"employeeId" binding:"required,min=1" example:"665f1c2e8b3e4a0012345678"`
	ShiftID    string                `json:"shiftId,omitempty"`
	Date       string                `json:"date" binding:"required,ymd" example:"2024-05-01"`
	CheckIn    string                `json:"checkIn" binding:"required,ymdhm" example:"2024-05-01T09:05"`
	CheckOut   string                `json:"checkOut,omitempty" binding:"omitempty,ymdhm" example:"2024-05-01T17:00"`
	Status     core.AttendanceStatus `json:"status,omitempty" binding:"omitempty,oneof=present absent late early-leave"`
	Notes      string                `json:"notes,omitempty"`
}

func (MarkAttendanceDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"employeeId.required": "Employee is required",
		"employeeId.min":      "Employee is required",
		"date.required":       "Invalid date format",
		"date.ymd":            "Invalid date format",
		"checkIn.required":    "Invalid datetime format",
		"checkIn.ymdhm":       "Invalid datetime format",
		"checkOut.ymdhm":      "Invalid datetime format",
		"status.oneof":        "Status must be present, absent, late or early-leave",
	}
}

// AttendanceHistoryQueryDto GET /api/attendance/history
type AttendanceHistoryQueryDto struct {
	EmployeeID string                `form:"employeeId"`
	StartDate  string                `form:"startDate" binding:"omitempty,ymd"`
	EndDate    string                `form:"endDate" binding:"omitempty,ymd"`
	Status     core.AttendanceStatus `form:"status" binding:"omitempty,oneof=present absent late early-leave"`
}

func (AttendanceHistoryQueryDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"startDate.ymd": "Invalid date format",
		"endDate.ymd":   "Invalid date format",
		"status.oneof":  "Status must be present, absent, late or early-leave",
	}
}

type AttendanceResponseDto struct {
	ID         string                `json:"id"`
	EmployeeID string                `json:"employeeId"`
	ShiftID    string                `json:"shiftId,omitempty"`
	Date       time.Time             `json:"date"`
	CheckIn    time.Time             `json:"checkIn"`
	CheckOut   *time.Time            `json:"checkOut,omitempty"`
	Status     core.AttendanceStatus `json:"status"`
	Notes      string                `json:"notes,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}
