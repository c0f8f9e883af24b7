package service

import (
	"context"
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/telemetry"

	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	trace       *telemetry.Trace
	employees   EmployeeStore
	shifts      ShiftStore
	attendances AttendanceStore
}

func NewDashboardService(trace *telemetry.Trace, employees EmployeeStore, shifts ShiftStore, attendances AttendanceStore) *DashboardService {
	return &DashboardService{trace: trace, employees: employees, shifts: shifts, attendances: attendances}
}

// Stats 四個計數彼此獨立，平行查詢；employee 只計算自己的班表與出勤
func (s *DashboardService) Stats(ctx context.Context, caller *core.Caller, now time.Time) (_ *dto.DashboardStatsDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	var employeeID string
	if caller != nil && caller.Role == core.RoleEmployee {
		employeeID = caller.ID
	}
	todayStart, todayEnd := core.DayWindow(now)

	stats := &dto.DashboardStatsDto{}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		stats.TotalEmployees, err = s.employees.Count(groupCtx, core.EmployeeFilter{})
		return err
	})
	group.Go(func() (err error) {
		stats.TotalShifts, err = s.shifts.Count(groupCtx, core.ShiftFilter{EmployeeID: employeeID})
		return err
	})
	group.Go(func() (err error) {
		stats.TodayAttendance, err = s.attendances.Count(groupCtx, core.AttendanceFilter{
			EmployeeID: employeeID,
			From:       &todayStart,
			To:         &todayEnd,
		})
		return err
	})
	group.Go(func() (err error) {
		stats.UpcomingShifts, err = s.shifts.Count(groupCtx, core.ShiftFilter{
			EmployeeID: employeeID,
			From:       &todayStart,
			Status:     core.ShiftStatusScheduled,
		})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, cErr.DatabaseError("database DashboardStats error")
	}
	return stats, nil
}
