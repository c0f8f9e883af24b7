package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	"shiftboard/internal/database/client"
	"shiftboard/internal/database/fluentd/repository"
	"shiftboard/internal/dto"
	"shiftboard/internal/middleware"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/request"
	"shiftboard/internal/service"
	"shiftboard/internal/service/servicetest"
	"shiftboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Code        int               `json:"code"`
	Data        json.RawMessage   `json:"data"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details"`
}

type testApp struct {
	engine      *gin.Engine
	tokens      *auth.TokenManager
	users       *servicetest.UserStore
	employees   *servicetest.EmployeeStore
	shifts      *servicetest.ShiftStore
	attendances *servicetest.AttendanceStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, request.Setup(dto.StructRules...))

	conf := &config.Configuration{Auth: config.Auth{JWTSecret: "handler-secret", BcryptCost: 4}}
	conf.ApplyDefaults()
	trace, metric, logger := &telemetry.Trace{}, &telemetry.Metric{}, zap.NewNop()
	logs := repository.NewLogRepository(conf, &client.NoopClient{})
	tokens, err := auth.NewTokenManager(conf)
	require.NoError(t, err)

	app := &testApp{
		tokens:      tokens,
		users:       &servicetest.UserStore{},
		employees:   &servicetest.EmployeeStore{},
		shifts:      &servicetest.ShiftStore{},
		attendances: &servicetest.AttendanceStore{},
	}
	revoker := &servicetest.Revoker{}

	authHandler := NewAuthHandler(trace, conf, service.NewAuthService(trace, conf, app.users, tokens, revoker))
	employeeHandler := NewEmployeeHandler(trace, service.NewEmployeeService(trace, app.employees))
	shiftHandler := NewShiftHandler(trace, service.NewShiftService(trace, app.shifts))
	attendanceHandler := NewAttendanceHandler(trace, service.NewAttendanceService(trace, metric, app.attendances))
	dashboardHandler := NewDashboardHandler(trace, service.NewDashboardService(trace, app.employees, app.shifts, app.attendances))
	gate := middleware.NewAuth(logger, trace, conf, tokens, revoker)

	r := gin.New()
	r.Use(middleware.NewRecovery(logger, trace, metric, conf, logs).ErrorHandler())
	r.Use(middleware.NewResponse(logger, trace, metric, conf, logs).FormatHandler())
	api := r.Group("/api")
	api.POST("/auth", authHandler.Handle)
	staff := gate.RequireRole(core.RoleAdmin, core.RoleEmployee)
	admin := gate.RequireRole(core.RoleAdmin)
	api.GET("/employees", staff, employeeHandler.List)
	api.POST("/employees", admin, employeeHandler.Create)
	api.GET("/employees/:id", staff, employeeHandler.Get)
	api.PUT("/employees/:id", admin, employeeHandler.Update)
	api.DELETE("/employees/:id", admin, employeeHandler.Delete)
	api.GET("/shifts", staff, shiftHandler.List)
	api.POST("/shifts", admin, shiftHandler.Create)
	api.PUT("/shifts/:id", admin, shiftHandler.Update)
	api.DELETE("/shifts/:id", admin, shiftHandler.Delete)
	api.POST("/attendance", gate.RequireAuthenticated(), attendanceHandler.Mark)
	api.GET("/attendance/history", gate.RequireAuthenticated(), attendanceHandler.History)
	api.GET("/dashboard/stats", staff, dashboardHandler.Stats)
	app.engine = r
	return app
}

func (a *testApp) bearer(t *testing.T, id string, role core.Role) string {
	t.Helper()
	token, _, err := a.tokens.Issue(&core.Caller{ID: id, Email: "x@example.com", Role: role, Name: "X"})
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *testApp) do(t *testing.T, method, path, authorization string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

const (
	adminID    = "665f1c2e8b3e4a0000000001"
	employeeID = "665f1c2e8b3e4a0000000002"
)

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	register := gin.H{"action": "register", "email": "Ann@Example.com", "password": "secret1", "name": "Ann Lee", "role": "employee"}

	w, env := app.do(t, http.MethodPost, "/api/auth", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Registration successful", env.Description)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

	w, env = app.do(t, http.MethodPost, "/api/auth", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, cErr.CONFLICT, env.Code)
	assert.Equal(t, 1, app.users.Len())

	w, env = app.do(t, http.MethodPost, "/api/auth", "", gin.H{"action": "login", "email": "ann@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Description)
	var login struct {
		User  dto.UserResponseDto `json:"user"`
		Token string              `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "ann@example.com", login.User.Email)

	w, env = app.do(t, http.MethodPost, "/api/auth", "", gin.H{"action": "login", "email": "ann@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, cErr.INVALID_CREDENTIALS, env.Code)

	w, env = app.do(t, http.MethodPost, "/api/auth", "Bearer "+login.Token, gin.H{"action": "logout"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", env.Description)

	// 登出後同一個 token 不可再用
	w, _ = app.do(t, http.MethodGet, "/api/employees", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = app.do(t, http.MethodPost, "/api/auth", "", gin.H{"action": "dance"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, cErr.INVALID_ACTION, env.Code)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)
	w, env := app.do(t, http.MethodPost, "/api/auth", "", gin.H{"action": "register", "email": "bad", "password": "123", "name": "A", "role": "boss"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, cErr.BAD_REQUEST_BODY, env.Code)
	assert.Equal(t, "Invalid email address", env.Details["email"])
	assert.Equal(t, "Password must be at least 6 characters", env.Details["password"])
	assert.Equal(t, "Role must be admin or employee", env.Details["role"])
	assert.Equal(t, 0, app.users.Len())
}

func TestEmployeeLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.bearer(t, adminID, core.RoleAdmin)
	staff := app.bearer(t, employeeID, core.RoleEmployee)
	body := gin.H{"name": "Ann Lee", "email": "ann@x.io", "phone": "5551234567", "position": "Cashier", "department": "Retail", "hireDate": "2024-01-15"}

	w, _ := app.do(t, http.MethodPost, "/api/employees", staff, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := app.do(t, http.MethodPost, "/api/employees", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.EmployeeResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, core.EmployeeStatusActive, created.Status)

	w, env = app.do(t, http.MethodPost, "/api/employees", admin, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, cErr.CONFLICT, env.Code)

	w, _ = app.do(t, http.MethodGet, "/api/employees/"+created.ID, staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = app.do(t, http.MethodPut, "/api/employees/"+created.ID, admin, gin.H{"position": "Manager"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.EmployeeResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Manager", updated.Position)
	assert.Equal(t, "Ann Lee", updated.Name)

	w, env = app.do(t, http.MethodDelete, "/api/employees/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Employee deleted successfully", env.Description)

	w, env = app.do(t, http.MethodDelete, "/api/employees/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, cErr.NOT_FOUND, env.Code)

	w, _ = app.do(t, http.MethodGet, "/api/employees/not-an-id", staff, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodGet, "/api/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShiftRejectsInvertedWindow(t *testing.T) {
	app := newTestApp(t)
	admin := app.bearer(t, adminID, core.RoleAdmin)

	w, env := app.do(t, http.MethodPost, "/api/shifts", admin, gin.H{
		"employeeId": "E1", "startTime": "2024-05-01T09:00", "endTime": "2024-05-01T08:00",
		"date": "2024-05-01", "location": "Main store",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "End time must be after start time", env.Details["endTime"])
	assert.Equal(t, 0, app.shifts.Len())

	w, env = app.do(t, http.MethodPost, "/api/shifts", admin, gin.H{
		"employeeId": "E1", "startTime": "2024-05-01T09:00", "endTime": "2024-05-01T17:00",
		"date": "2024-05-01", "location": "Main store",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var shift dto.ShiftResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &shift))

	w, env = app.do(t, http.MethodPut, "/api/shifts/"+shift.ID, admin, gin.H{"startTime": "2024-05-01T18:00", "endTime": "2024-05-01T10:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Details, "endTime")

	w, env = app.do(t, http.MethodGet, "/api/shifts?date=2024-05-01", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shifts []dto.ShiftResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &shifts))
	assert.Len(t, shifts, 1)

	w, _ = app.do(t, http.MethodGet, "/api/shifts?date=05/01/2024", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = app.do(t, http.MethodDelete, "/api/shifts/"+shift.ID, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shift deleted successfully", env.Description)
}

func TestAttendanceMarkAndHistory(t *testing.T) {
	app := newTestApp(t)
	staff := app.bearer(t, employeeID, core.RoleEmployee)
	admin := app.bearer(t, adminID, core.RoleAdmin)

	w, _ := app.do(t, http.MethodPost, "/api/attendance", staff, gin.H{"employeeId": employeeID, "date": "2024-05-01", "checkIn": "2024-05-01T09:05"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := app.do(t, http.MethodPost, "/api/attendance", staff, gin.H{"employeeId": employeeID, "date": "2024-05-01", "checkIn": "2024-05-01T09:05", "checkOut": "2024-05-01T17:00"})
	require.Equal(t, http.StatusOK, w.Code)
	var record dto.AttendanceResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &record))
	require.NotNil(t, record.CheckOut)
	assert.Equal(t, 1, app.attendances.Len())

	w, env = app.do(t, http.MethodPost, "/api/attendance", staff, gin.H{"employeeId": adminID, "date": "2024-05-01", "checkIn": "2024-05-01T09:05"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, cErr.FORBIDDEN_OWNER, env.Code)

	w, _ = app.do(t, http.MethodPost, "/api/attendance", admin, gin.H{"employeeId": adminID, "date": "2024-05-02", "checkIn": "2024-05-02T08:00"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = app.do(t, http.MethodGet, "/api/attendance/history?employeeId="+adminID, staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []dto.AttendanceResponseDto
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, employeeID, history[0].EmployeeID)

	w, _ = app.do(t, http.MethodGet, "/api/attendance/history?status=sleeping", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	app := newTestApp(t)
	w, env := app.do(t, http.MethodGet, "/api/dashboard/stats", app.bearer(t, adminID, core.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.DashboardStatsDto
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Zero(t, stats.TotalEmployees)
}

func TestHealthReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	health := service.NewHealthService()
	h := NewHealthHandler(health)
	r := gin.New()
	r.GET("/health/readiness", h.Readiness)
	r.GET("/health/liveness", h.Liveness)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/health/liveness").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/health/readiness").Code)

	health.SetReady(true)
	health.AddCheck("mongodb", func(context.Context) error { return nil })
	w := get("/health/readiness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb":"up"`)

	health.AddCheck("redis", func(context.Context) error { return assert.AnError })
	assert.Equal(t, http.StatusServiceUnavailable, get("/health/readiness").Code)
}
