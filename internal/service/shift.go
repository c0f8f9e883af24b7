package service

import (
	"context"
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const shiftNotFound = "Shift not found"

type ShiftService struct {
	trace  *telemetry.Trace
	shifts ShiftStore
	now    func() time.Time
}

func NewShiftService(trace *telemetry.Trace, shifts ShiftStore) *ShiftService {
	return &ShiftService{trace: trace, shifts: shifts, now: time.Now}
}

// List employeeId / date 皆可省略；date 代表當天整日
func (s *ShiftService) List(ctx context.Context, query *dto.ShiftQueryDto) ([]*dto.ShiftResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	filter := core.ShiftFilter{EmployeeID: query.EmployeeID}
	if query.Date != "" {
		day, err := core.ParseDate(query.Date)
		if err != nil {
			return nil, cErr.Validation("Invalid date format", map[string]string{"date": "Invalid date format"})
		}
		filter.Day = &day
	}

	shifts, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, cErr.DatabaseError("database ListShifts error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Resource:    "shift",
		Filter:      map[string]any{"employeeId": query.EmployeeID, "date": query.Date},
		ResultCount: len(shifts),
	})

	resp := make([]*dto.ShiftResponseDto, len(shifts))
	for i, shift := range shifts {
		resp[i] = modelToShiftResponseDto(shift)
	}
	return resp, nil
}

func (s *ShiftService) Create(ctx context.Context, req *dto.CreateShiftDto) (*dto.ShiftResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	date, dateErr := core.ParseDate(req.Date)
	start, startErr := core.ParseDateTime(req.StartTime)
	finish, finishErr := core.ParseDateTime(req.EndTime)
	if dateErr != nil || startErr != nil || finishErr != nil {
		return nil, cErr.ValidateErr("Invalid date format")
	}
	if !finish.After(start) {
		return nil, endTimeError()
	}

	created, err := s.shifts.Create(ctx, &model.Shift{
		EmployeeID: req.EmployeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    finish,
		Location:   req.Location,
		Notes:      req.Notes,
		Status:     req.Status,
	})
	if err != nil {
		return nil, storeError(err, shiftNotFound, "", "CreateShift")
	}
	return modelToShiftResponseDto(created), nil
}

func (s *ShiftService) Get(ctx context.Context, id primitive.ObjectID) (*dto.ShiftResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, shiftNotFound, "", "GetShift")
	}
	return modelToShiftResponseDto(shift), nil
}

// Update 只覆寫有提供的欄位；起訖時間同時提供時才檢查先後
func (s *ShiftService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateShiftDto) (*dto.ShiftResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	set := bson.M{}
	if req.EmployeeID != nil {
		set["employeeId"] = *req.EmployeeID
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			return nil, cErr.Validation("Invalid date format", map[string]string{"date": "Invalid date format"})
		}
		set["date"] = date
	}
	var start, finish *time.Time
	if req.StartTime != nil {
		t, err := core.ParseDateTime(*req.StartTime)
		if err != nil {
			return nil, cErr.Validation("Invalid datetime format", map[string]string{"startTime": "Invalid datetime format"})
		}
		start = &t
		set["startTime"] = t
	}
	if req.EndTime != nil {
		t, err := core.ParseDateTime(*req.EndTime)
		if err != nil {
			return nil, cErr.Validation("Invalid datetime format", map[string]string{"endTime": "Invalid datetime format"})
		}
		finish = &t
		set["endTime"] = t
	}
	if start != nil && finish != nil && !finish.After(*start) {
		return nil, endTimeError()
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	updated, err := s.shifts.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, storeError(err, shiftNotFound, "", "UpdateShift")
	}
	return modelToShiftResponseDto(updated), nil
}

func (s *ShiftService) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if err := s.shifts.DeleteByID(ctx, id); err != nil {
		return storeError(err, shiftNotFound, "", "DeleteShift")
	}
	return nil
}

// CompletePastShifts 排程使用：已過結束時間的 scheduled 班表改為 completed
func (s *ShiftService) CompletePastShifts(ctx context.Context) (_ int64, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	affected, err := s.shifts.CompletePast(ctx, s.now())
	if err != nil {
		return 0, cErr.DatabaseError("database CompletePastShifts error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceCronJobMeta{Job: "complete_past_shifts", Affected: affected})
	return affected, nil
}

func endTimeError() error {
	const message = "End time must be after start time"
	return cErr.Validation(message, map[string]string{"endTime": message})
}

func modelToShiftResponseDto(shift *model.Shift) *dto.ShiftResponseDto {
	return &dto.ShiftResponseDto{
		ID:         shift.ID.Hex(),
		EmployeeID: shift.EmployeeID,
		Date:       shift.Date,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		Location:   shift.Location,
		Notes:      shift.Notes,
		Status:     shift.Status,
		CreatedAt:  shift.CreatedAt,
		UpdatedAt:  shift.UpdatedAt,
	}
}
