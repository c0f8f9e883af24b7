package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/service/servicetest"
	"shiftboard/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	testTrace  = &telemetry.Trace{}
	testMetric = &telemetry.Metric{}
)

func testConfig() *config.Configuration {
	conf := &config.Configuration{Auth: config.Auth{JWTSecret: "unit-secret", BcryptCost: 4}}
	conf.ApplyDefaults()
	return conf
}

func newAuthService(t *testing.T) (*AuthService, *servicetest.UserStore, *servicetest.Revoker, *auth.TokenManager) {
	t.Helper()
	conf := testConfig()
	tokens, err := auth.NewTokenManager(conf)
	require.NoError(t, err)
	users := &servicetest.UserStore{}
	revoker := &servicetest.Revoker{}
	return NewAuthService(testTrace, conf, users, tokens, revoker), users, revoker, tokens
}

func requireAppError(t *testing.T, err error, httpCode, errorCode int) *cErr.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr), "unexpected error type %T", err)
	assert.Equal(t, httpCode, appErr.HttpCode())
	assert.Equal(t, errorCode, appErr.ErrorCode())
	return appErr
}

func TestRegisterThenLogin(t *testing.T) {
	svc, users, _, tokens := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, &dto.RegisterDto{Email: "Ann@Example.com", Password: "secret1", Name: "Ann", Role: core.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", session.User.Email)
	assert.Equal(t, 1, users.Len())

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, core.RoleEmployee, claims.Role)

	login, err := svc.Login(ctx, &dto.LoginDto{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newAuthService(t)
	ctx := context.Background()
	req := &dto.RegisterDto{Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: core.RoleAdmin}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)
	_, err = svc.Register(ctx, req)
	appErr := requireAppError(t, err, http.StatusBadRequest, cErr.CONFLICT)
	assert.Equal(t, "User already exists", appErr.ErrorDesc())
	assert.Equal(t, 1, users.Len())
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, "boss@example.com", "secret1", "Boss")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginDto{Email: "boss@example.com", Password: "wrong-pass"})
	requireAppError(t, err, http.StatusUnauthorized, cErr.INVALID_CREDENTIALS)
	_, err = svc.Login(ctx, &dto.LoginDto{Email: "nobody@example.com", Password: "secret1"})
	requireAppError(t, err, http.StatusUnauthorized, cErr.INVALID_CREDENTIALS)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, revoker, tokens := newAuthService(t)
	ctx := context.Background()
	session, err := svc.Register(ctx, &dto.RegisterDto{Email: "ann@example.com", Password: "secret1", Name: "Ann", Role: core.RoleEmployee})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))
	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	revoked, err := revoker.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestEmployeeLifecycle(t *testing.T) {
	svc := NewEmployeeService(testTrace, &servicetest.EmployeeStore{})
	ctx := context.Background()
	req := &dto.CreateEmployeeDto{
		Name:       "Ann Lee",
		Email:      "ann@x.io",
		Phone:      "5551234567",
		Position:   "Cashier",
		Department: "Retail",
		HireDate:   "2024-01-15",
	}

	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, core.EmployeeStatusActive, created.Status)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), created.HireDate)

	_, err = svc.Create(ctx, req)
	appErr := requireAppError(t, err, http.StatusBadRequest, cErr.CONFLICT)
	assert.Equal(t, "Employee with this email already exists", appErr.ErrorDesc())

	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)
	inactive := core.EmployeeStatusInactive
	position := "Manager"
	updated, err := svc.Update(ctx, id, &dto.UpdateEmployeeDto{Status: &inactive, Position: &position})
	require.NoError(t, err)
	assert.Equal(t, core.EmployeeStatusInactive, updated.Status)
	assert.Equal(t, "Manager", updated.Position)
	assert.Equal(t, "Ann Lee", updated.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, id))
	err = svc.Delete(ctx, id)
	requireAppError(t, err, http.StatusNotFound, cErr.NOT_FOUND)
	_, err = svc.Get(ctx, id)
	requireAppError(t, err, http.StatusNotFound, cErr.NOT_FOUND)
}

func TestEmployeeEmailUniqueWithoutIndex(t *testing.T) {
	store := &servicetest.EmployeeStore{Unindexed: true}
	svc := NewEmployeeService(testTrace, store)
	ctx := context.Background()

	ann, err := svc.Create(ctx, &dto.CreateEmployeeDto{Name: "Ann Lee", Email: "ann@x.io", Position: "Cashier", Department: "Retail", HireDate: "2024-01-15"})
	require.NoError(t, err)
	bob, err := svc.Create(ctx, &dto.CreateEmployeeDto{Name: "Bob Ray", Email: "bob@x.io", Position: "Cook", Department: "Kitchen", HireDate: "2024-02-01"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &dto.CreateEmployeeDto{Name: "Ann Two", Email: " ANN@x.io ", Position: "Cashier", Department: "Retail", HireDate: "2024-03-01"})
	requireAppError(t, err, http.StatusBadRequest, cErr.CONFLICT)

	bobID, err := primitive.ObjectIDFromHex(bob.ID)
	require.NoError(t, err)
	taken := "ann@x.io"
	_, err = svc.Update(ctx, bobID, &dto.UpdateEmployeeDto{Email: &taken})
	requireAppError(t, err, http.StatusBadRequest, cErr.CONFLICT)

	annID, err := primitive.ObjectIDFromHex(ann.ID)
	require.NoError(t, err)
	same := "Ann@X.io"
	updated, err := svc.Update(ctx, annID, &dto.UpdateEmployeeDto{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", updated.Email)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEmployeeStoreFailureIsDatabaseError(t *testing.T) {
	svc := NewEmployeeService(testTrace, &servicetest.EmployeeStore{Err: errors.New("connection reset")})
	_, err := svc.List(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, cErr.DATABASE_ERROR)
}

func TestShiftCreateRejectsInvertedWindow(t *testing.T) {
	store := &servicetest.ShiftStore{}
	svc := NewShiftService(testTrace, store)
	_, err := svc.Create(context.Background(), &dto.CreateShiftDto{
		EmployeeID: "E1",
		StartTime:  "2024-05-01T09:00",
		EndTime:    "2024-05-01T08:00",
		Date:       "2024-05-01",
		Location:   "Main store",
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, cErr.BAD_REQUEST_BODY)
	assert.Contains(t, appErr.Details(), "endTime")
	assert.Equal(t, 0, store.Len())
}

func TestShiftListByDayAndUpdate(t *testing.T) {
	svc := NewShiftService(testTrace, &servicetest.ShiftStore{})
	ctx := context.Background()
	for _, day := range []string{"2024-05-01", "2024-05-02"} {
		_, err := svc.Create(ctx, &dto.CreateShiftDto{
			EmployeeID: "E1",
			StartTime:  day + "T09:00",
			EndTime:    day + "T17:00",
			Date:       day,
			Location:   "Main store",
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, &dto.ShiftQueryDto{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), all[0].Date)

	day, err := svc.List(ctx, &dto.ShiftQueryDto{Date: "2024-05-01", EmployeeID: "E1"})
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, core.ShiftStatusScheduled, day[0].Status)

	id, _ := primitive.ObjectIDFromHex(day[0].ID)
	start, end := "2024-05-01T10:00", "2024-05-01T09:30"
	_, err = svc.Update(ctx, id, &dto.UpdateShiftDto{StartTime: &start, EndTime: &end})
	requireAppError(t, err, http.StatusBadRequest, cErr.BAD_REQUEST_BODY)

	// 只提供 endTime 時不與既有 startTime 比較
	_, err = svc.Update(ctx, id, &dto.UpdateShiftDto{EndTime: &end})
	assert.NoError(t, err)

	notes := "bring keys"
	updated, err := svc.Update(ctx, id, &dto.UpdateShiftDto{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "bring keys", updated.Notes)

	location := "Back office"
	updated, err = svc.Update(ctx, id, &dto.UpdateShiftDto{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "bring keys", updated.Notes)

	cleared := ""
	updated, err = svc.Update(ctx, id, &dto.UpdateShiftDto{Notes: &cleared})
	require.NoError(t, err)
	assert.Empty(t, updated.Notes)

	require.NoError(t, svc.Delete(ctx, id))
	requireAppError(t, svc.Delete(ctx, id), http.StatusNotFound, cErr.NOT_FOUND)
}

func TestCompletePastShifts(t *testing.T) {
	svc := NewShiftService(testTrace, &servicetest.ShiftStore{})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()
	for _, window := range [][2]string{{"2024-05-01T06:00", "2024-05-01T11:00"}, {"2024-05-01T13:00", "2024-05-01T18:00"}} {
		_, err := svc.Create(ctx, &dto.CreateShiftDto{
			EmployeeID: "E1", StartTime: window[0], EndTime: window[1], Date: "2024-05-01", Location: "Main store",
		})
		require.NoError(t, err)
	}

	affected, err := svc.CompletePastShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestMarkAttendanceUpsertsOnePerDay(t *testing.T) {
	store := &servicetest.AttendanceStore{}
	svc := NewAttendanceService(testTrace, testMetric, store)
	ctx := context.Background()
	admin := &core.Caller{ID: "A1", Role: core.RoleAdmin}

	first, created, err := svc.Mark(ctx, admin, &dto.MarkAttendanceDto{EmployeeID: "E1", Date: "2024-05-01", CheckIn: "2024-05-01T09:05"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, core.AttendanceStatusPresent, first.Status)
	assert.Nil(t, first.CheckOut)

	second, created, err := svc.Mark(ctx, admin, &dto.MarkAttendanceDto{
		EmployeeID: "E1", Date: "2024-05-01", CheckIn: "2024-05-01T09:05", CheckOut: "2024-05-01T17:00",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CheckOut)
	assert.Equal(t, time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC), *second.CheckOut)
	assert.Equal(t, 1, store.Len())
}

func TestMarkAttendanceOwnership(t *testing.T) {
	store := &servicetest.AttendanceStore{}
	svc := NewAttendanceService(testTrace, testMetric, store)
	employee := &core.Caller{ID: "E1", Role: core.RoleEmployee}

	_, _, err := svc.Mark(context.Background(), employee, &dto.MarkAttendanceDto{EmployeeID: "E2", Date: "2024-05-01", CheckIn: "2024-05-01T09:05"})
	requireAppError(t, err, http.StatusForbidden, cErr.FORBIDDEN_OWNER)
	assert.Equal(t, 0, store.Len())

	_, _, err = svc.Mark(context.Background(), employee, &dto.MarkAttendanceDto{EmployeeID: "E1", Date: "2024-05-01", CheckIn: "2024-05-01T09:05"})
	assert.NoError(t, err)
}

func TestHistoryScopesEmployeeCallers(t *testing.T) {
	svc := NewAttendanceService(testTrace, testMetric, &servicetest.AttendanceStore{})
	ctx := context.Background()
	admin := &core.Caller{ID: "A1", Role: core.RoleAdmin}
	for _, mark := range []dto.MarkAttendanceDto{
		{EmployeeID: "E1", Date: "2024-05-01", CheckIn: "2024-05-01T09:00"},
		{EmployeeID: "E1", Date: "2024-05-03", CheckIn: "2024-05-03T09:00", Status: core.AttendanceStatusLate},
		{EmployeeID: "E2", Date: "2024-05-02", CheckIn: "2024-05-02T09:00"},
	} {
		mark := mark
		_, _, err := svc.Mark(ctx, admin, &mark)
		require.NoError(t, err)
	}

	own, err := svc.History(ctx, &core.Caller{ID: "E1", Role: core.RoleEmployee}, &dto.AttendanceHistoryQueryDto{EmployeeID: "E2"})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "E1", own[0].EmployeeID)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), own[0].Date)

	ranged, err := svc.History(ctx, admin, &dto.AttendanceHistoryQueryDto{StartDate: "2024-05-02", EndDate: "2024-05-03"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	late, err := svc.History(ctx, admin, &dto.AttendanceHistoryQueryDto{Status: core.AttendanceStatusLate})
	require.NoError(t, err)
	assert.Len(t, late, 1)
}

func TestDashboardStats(t *testing.T) {
	employees := &servicetest.EmployeeStore{}
	shifts := &servicetest.ShiftStore{}
	attendances := &servicetest.AttendanceStore{}
	svc := NewDashboardService(testTrace, employees, shifts, attendances)
	ctx := context.Background()
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	shiftSvc := NewShiftService(testTrace, shifts)
	for _, s := range []struct{ employee, day string }{{"E1", "2024-05-01"}, {"E1", "2024-05-03"}, {"E2", "2024-05-04"}} {
		_, err := shiftSvc.Create(ctx, &dto.CreateShiftDto{
			EmployeeID: s.employee, StartTime: s.day + "T09:00", EndTime: s.day + "T17:00", Date: s.day, Location: "Main store",
		})
		require.NoError(t, err)
	}
	attendanceSvc := NewAttendanceService(testTrace, testMetric, attendances)
	_, _, err := attendanceSvc.Mark(ctx, &core.Caller{ID: "A1", Role: core.RoleAdmin}, &dto.MarkAttendanceDto{EmployeeID: "E2", Date: "2024-05-02", CheckIn: "2024-05-02T09:00"})
	require.NoError(t, err)
	_, err = NewEmployeeService(testTrace, employees).Create(ctx, &dto.CreateEmployeeDto{
		Name: "Ann Lee", Email: "ann@x.io", Phone: "5551234567", Position: "Cashier", Department: "Retail", HireDate: "2024-01-15",
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, &core.Caller{ID: "A1", Role: core.RoleAdmin}, now)
	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStatsDto{TotalEmployees: 1, TotalShifts: 3, TodayAttendance: 1, UpcomingShifts: 2}, stats)

	own, err := svc.Stats(ctx, &core.Caller{ID: "E1", Role: core.RoleEmployee}, now)
	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStatsDto{TotalEmployees: 1, TotalShifts: 2, TodayAttendance: 0, UpcomingShifts: 1}, own)
}

func TestHealthService(t *testing.T) {
	svc := NewHealthService()
	assert.True(t, svc.IsLive())
	assert.False(t, svc.IsReady())
	svc.SetReady(true)
	assert.True(t, svc.IsReady())

	svc.AddCheck("mongodb", func(context.Context) error { return nil })
	statuses, ok := svc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"mongodb": "up"}, statuses)

	svc.AddCheck("redis", func(context.Context) error { return errors.New("connection refused") })
	statuses, ok = svc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "down: connection refused", statuses["redis"])
}
