package router

import (
	"shiftboard/internal/core"
	"shiftboard/internal/handler"
	"shiftboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// APIRouter 掛載 /api 底下所有資源路由
type APIRouter struct {
	throttle          *middleware.Throttle
	authGate          *middleware.Auth
	authHandler       *handler.AuthHandler
	employeeHandler   *handler.EmployeeHandler
	shiftHandler      *handler.ShiftHandler
	attendanceHandler *handler.AttendanceHandler
	dashboardHandler  *handler.DashboardHandler
}

func NewAPIRouter(
	throttle *middleware.Throttle,
	authGate *middleware.Auth,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	shiftHandler *handler.ShiftHandler,
	attendanceHandler *handler.AttendanceHandler,
	dashboardHandler *handler.DashboardHandler,
) *APIRouter {
	return &APIRouter{
		throttle:          throttle,
		authGate:          authGate,
		authHandler:       authHandler,
		employeeHandler:   employeeHandler,
		shiftHandler:      shiftHandler,
		attendanceHandler: attendanceHandler,
		dashboardHandler:  dashboardHandler,
	}
}

func (ar *APIRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// 登入 / 註冊 / 登出不需驗證，但依 IP 限流
	api.POST("/auth", ar.throttle.Handler(), ar.authHandler.Handle)

	staff := ar.authGate.RequireRole(core.RoleAdmin, core.RoleEmployee)
	admin := ar.authGate.RequireRole(core.RoleAdmin)

	employees := api.Group("/employees")
	{
		employees.GET("", staff, ar.employeeHandler.List)
		employees.POST("", admin, ar.employeeHandler.Create)
		employees.GET("/:id", staff, ar.employeeHandler.Get)
		employees.PUT("/:id", admin, ar.employeeHandler.Update)
		employees.DELETE("/:id", admin, ar.employeeHandler.Delete)
	}

	shifts := api.Group("/shifts")
	{
		shifts.GET("", staff, ar.shiftHandler.List)
		shifts.POST("", admin, ar.shiftHandler.Create)
		shifts.GET("/:id", staff, ar.shiftHandler.Get)
		shifts.PUT("/:id", admin, ar.shiftHandler.Update)
		shifts.DELETE("/:id", admin, ar.shiftHandler.Delete)
	}

	attendance := api.Group("/attendance", ar.authGate.RequireAuthenticated())
	{
		attendance.POST("", ar.attendanceHandler.Mark)
		attendance.GET("/history", ar.attendanceHandler.History)
	}

	api.GET("/dashboard/stats", staff, ar.dashboardHandler.Stats)
}
