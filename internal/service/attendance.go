package service

import (
	"context"
	"time"

	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/telemetry"
)

type AttendanceService struct {
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	attendances AttendanceStore
}

func NewAttendanceService(trace *telemetry.Trace, metric *telemetry.Metric, attendances AttendanceStore) *AttendanceService {
	return &AttendanceService{trace: trace, metric: metric, attendances: attendances}
}

// Mark 以 (employeeId, date) upsert；employee 只能替自己打卡
func (s *AttendanceService) Mark(ctx context.Context, caller *core.Caller, req *dto.MarkAttendanceDto) (_ *dto.AttendanceResponseDto, created bool, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if err := auth.EnsureOwner(caller, req.EmployeeID); err != nil {
		return nil, false, err
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return nil, false, cErr.Validation("Invalid date format", map[string]string{"date": "Invalid date format"})
	}
	checkIn, err := core.ParseDateTime(req.CheckIn)
	if err != nil {
		return nil, false, cErr.Validation("Invalid datetime format", map[string]string{"checkIn": "Invalid datetime format"})
	}
	mark := &model.AttendanceMark{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Date:       date,
		CheckIn:    checkIn,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if req.CheckOut != "" {
		checkOut, err := core.ParseDateTime(req.CheckOut)
		if err != nil {
			return nil, false, cErr.Validation("Invalid datetime format", map[string]string{"checkOut": "Invalid datetime format"})
		}
		mark.CheckOut = &checkOut
	}

	attendance, created, err := s.attendances.Upsert(ctx, mark)
	if err != nil {
		return nil, false, storeError(err, "Attendance not found", "", "MarkAttendance")
	}
	s.metric.IncAttendanceMark(created)
	s.trace.ApplyTraceAttributes(span, core.TraceAttendanceMarkMeta{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		CallerID:   caller.ID,
		Created:    created,
	})
	return modelToAttendanceResponseDto(attendance), created, nil
}

// History employee 一律只看自己的紀錄；日期區間含頭尾整天，最多 100 筆
func (s *AttendanceService) History(ctx context.Context, caller *core.Caller, query *dto.AttendanceHistoryQueryDto) ([]*dto.AttendanceResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	filter, err := historyFilter(caller, query)
	if err != nil {
		return nil, err
	}
	records, err := s.attendances.List(ctx, filter)
	if err != nil {
		return nil, cErr.DatabaseError("database AttendanceHistory error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Resource:    "attendance",
		Filter:      map[string]any{"employeeId": filter.EmployeeID, "status": string(filter.Status)},
		ResultCount: len(records),
	})

	resp := make([]*dto.AttendanceResponseDto, len(records))
	for i, record := range records {
		resp[i] = modelToAttendanceResponseDto(record)
	}
	return resp, nil
}

func historyFilter(caller *core.Caller, query *dto.AttendanceHistoryQueryDto) (core.AttendanceFilter, error) {
	if caller == nil {
		return core.AttendanceFilter{}, cErr.Unauthorized("Unauthorized")
	}
	filter := core.AttendanceFilter{
		EmployeeID: query.EmployeeID,
		Status:     query.Status,
		Limit:      core.AttendanceHistoryLimit,
	}
	if caller.Role == core.RoleEmployee {
		filter.EmployeeID = caller.ID
	}
	if query.StartDate != "" {
		start, err := core.ParseDate(query.StartDate)
		if err != nil {
			return filter, cErr.Validation("Invalid date format", map[string]string{"startDate": "Invalid date format"})
		}
		filter.From = &start
	}
	if query.EndDate != "" {
		day, err := core.ParseDate(query.EndDate)
		if err != nil {
			return filter, cErr.Validation("Invalid date format", map[string]string{"endDate": "Invalid date format"})
		}
		_, last := core.DayWindow(day)
		filter.To = &last
	}
	return filter, nil
}

func modelToAttendanceResponseDto(a *model.Attendance) *dto.AttendanceResponseDto {
	var checkOut *time.Time
	if a.CheckOut != nil {
		t := *a.CheckOut
		checkOut = &t
	}
	return &dto.AttendanceResponseDto{
		ID:         a.ID.Hex(),
		EmployeeID: a.EmployeeID,
		ShiftID:    a.ShiftID,
		Date:       a.Date,
		CheckIn:    a.CheckIn,
		CheckOut:   checkOut,
		Status:     a.Status,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
