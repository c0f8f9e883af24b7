package dto

import (
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/pkg/request"

	"github.com/go-playground/validator/v10"
)

const endTimeMessage = "End time must be after start time"

type CreateShiftDto struct {
	EmployeeID string           `json:"employeeId" binding:"required,min=1" example:"665f1c2e8b3e4a0012345678"`
	StartTime  string           `json:"startTime" binding:"required,ymdhm" example:"2024-05-01T09:00"`
	EndTime    string           `json:"endTime" binding:"required,ymdhm" example:"2024-05-01T17:00"`
	Date       string           `json:"date" binding:"required,ymd" example:"2024-05-01"`
	Location   string           `json:"location" binding:"required,min=2" example:"Main store"`
	Notes      string           `json:"notes,omitempty"`
	Status     core.ShiftStatus `json:"status,omitempty" binding:"omitempty,oneof=scheduled completed cancelled"`
}

func (CreateShiftDto) GetMessages() request.ValidatorMessages {
	return shiftMessages
}

type UpdateShiftDto struct {
	EmployeeID *string           `json:"employeeId,omitempty" binding:"omitempty,min=1"`
	StartTime  *string           `json:"startTime,omitempty" binding:"omitempty,ymdhm"`
	EndTime    *string           `json:"endTime,omitempty" binding:"omitempty,ymdhm"`
	Date       *string           `json:"date,omitempty" binding:"omitempty,ymd"`
	Location   *string           `json:"location,omitempty" binding:"omitempty,min=2"`
	Notes      *string           `json:"notes,omitempty"`
	Status     *core.ShiftStatus `json:"status,omitempty" binding:"omitempty,oneof=scheduled completed cancelled"`
}

func (UpdateShiftDto) GetMessages() request.ValidatorMessages {
	return shiftMessages
}

var shiftMessages = request.ValidatorMessages{
	"employeeId.required": "Employee is required",
	"employeeId.min":      "Employee is required",
	"startTime.required":  "Invalid datetime format",
	"startTime.ymdhm":     "Invalid datetime format",
	"endTime.required":    "Invalid datetime format",
	"endTime.ymdhm":       "Invalid datetime format",
	"endTime.after_start": endTimeMessage,
	"date.required":       "Invalid date format",
	"date.ymd":            "Invalid date format",
	"location.required":   "Location is required",
	"location.min":        "Location is required",
	"status.oneof":        "Status must be scheduled, completed or cancelled",
}

// ShiftQueryDto GET /api/shifts
type ShiftQueryDto struct {
	EmployeeID string `form:"employeeId"`
	Date       string `form:"date" binding:"omitempty,ymd"`
}

func (ShiftQueryDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{"date.ymd": "Invalid date format"}
}

type ShiftResponseDto struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	Date       time.Time        `json:"date"`
	StartTime  time.Time        `json:"startTime"`
	EndTime    time.Time        `json:"endTime"`
	Location   string           `json:"location"`
	Notes      string           `json:"notes,omitempty"`
	Status     core.ShiftStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// StructRules 跨欄位規則
var StructRules = []request.StructRule{
	{Fn: shiftWindowRule, Types: []any{CreateShiftDto{}, UpdateShiftDto{}}},
}

// endTime 必須晚於 startTime，兩者都有提供且格式正確時才比較
func shiftWindowRule(sl validator.StructLevel) {
	var start, end *string
	switch v := sl.Current().Interface().(type) {
	case CreateShiftDto:
		start, end = &v.StartTime, &v.EndTime
	case UpdateShiftDto:
		start, end = v.StartTime, v.EndTime
	default:
		return
	}
	if start == nil || end == nil {
		return
	}
	startAt, err := core.ParseDateTime(*start)
	if err != nil {
		return
	}
	endAt, err := core.ParseDateTime(*end)
	if err != nil {
		return
	}
	if !endAt.After(startAt) {
		sl.ReportError(*end, "endTime", "EndTime", "after_start", "")
	}
}
