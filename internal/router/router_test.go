package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/database/client"
	fluentdRepo "shiftboard/internal/database/fluentd/repository"
	redisRepo "shiftboard/internal/database/redis/repository"
	"shiftboard/internal/handler"
	"shiftboard/internal/middleware"
	"shiftboard/internal/service"
	"shiftboard/internal/service/servicetest"
	"shiftboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	conf := &config.Configuration{
		App:  config.App{Env: "test", CorsAllowOrigins: []string{"http://localhost:3001"}},
		Auth: config.Auth{JWTSecret: "router-secret", BcryptCost: 4},
	}
	conf.ApplyDefaults()
	logger, trace, metric := zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}
	logs := fluentdRepo.NewLogRepository(conf, &client.NoopClient{})
	redisClient := &client.RedisClient{}
	tokens, err := auth.NewTokenManager(conf)
	require.NoError(t, err)
	revoker := redisRepo.NewTokenBlacklistRepository(trace, redisClient)

	employees, shifts, attendances := &servicetest.EmployeeStore{}, &servicetest.ShiftStore{}, &servicetest.AttendanceStore{}
	shiftService := service.NewShiftService(trace, shifts)
	apiRouter := NewAPIRouter(
		middleware.NewThrottle(logger, trace, metric, conf, redisRepo.NewLoginThrottleRepository(trace, redisClient)),
		middleware.NewAuth(logger, trace, conf, tokens, revoker),
		handler.NewAuthHandler(trace, conf, service.NewAuthService(trace, conf, &servicetest.UserStore{}, tokens, revoker)),
		handler.NewEmployeeHandler(trace, service.NewEmployeeService(trace, employees)),
		handler.NewShiftHandler(trace, shiftService),
		handler.NewAttendanceHandler(trace, service.NewAttendanceService(trace, metric, attendances)),
		handler.NewDashboardHandler(trace, service.NewDashboardService(trace, employees, shifts, attendances)),
	)
	engine, err := NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, trace, metric, conf, logs),
		middleware.NewCors(trace, conf),
		middleware.NewDecompress(trace),
		middleware.NewLogger(logger, trace, conf, logs),
		middleware.NewResponse(logger, trace, metric, conf, logs),
		NewHealthRouter(handler.NewHealthHandler(service.NewHealthService())),
		apiRouter,
	)
	require.NoError(t, err)
	return engine
}

func TestRouteTable(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health-check", "", http.StatusOK},
		{http.MethodGet, "/health/liveness", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/employees", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/shifts", "{}", http.StatusUnauthorized},
		{http.MethodPost, "/api/attendance", "{}", http.StatusUnauthorized},
		{http.MethodGet, "/api/attendance/history", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/dashboard/stats", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/auth", `{"action":"nope"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/auth", `{"action":"logout"}`, http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			if strings.HasPrefix(tc.path, "/api") {
				assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestCorsPreflight(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3001", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
