package handler

import (
	"shiftboard/internal/auth"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"
	"shiftboard/utils/validate"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	trace             *telemetry.Trace
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(trace *telemetry.Trace, attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{trace: trace, attendanceService: attendanceService}
}

// Mark 打卡（同一員工同一天只有一筆）
// @Summary 打卡 / 更新當日出勤
// @Description 第一次建立回 201，之後同一天再呼叫會覆寫帶入的欄位並回 200
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.MarkAttendanceDto true "出勤資料"
// @Success 200 {object} dto.AttendanceResponseDto
// @Success 201 {object} dto.AttendanceResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.AbortWithError(c, cErr.Unauthorized("Unauthorized"))
		return
	}
	var req dto.MarkAttendanceDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, created, err := h.attendanceService.Mark(ctx, caller, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	if created {
		response.Create(c, res)
		return
	}
	response.Success(c, res)
}

// History 出勤紀錄
// @Summary 查詢出勤紀錄
// @Description employee 只會看到自己的紀錄；最多回傳 100 筆
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param employeeId query string false "員工 ID（僅 admin 有效）"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD（含當天）"
// @Param status query string false "present | absent | late | early-leave"
// @Success 200 {array} dto.AttendanceResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/attendance/history [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.AbortWithError(c, cErr.Unauthorized("Unauthorized"))
		return
	}
	var query dto.AttendanceHistoryQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	records, err := h.attendanceService.History(ctx, caller, &query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, records)
}
