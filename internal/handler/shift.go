package handler

import (
	"shiftboard/internal/dto"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"
	"shiftboard/utils/validate"

	"github.com/gin-gonic/gin"
)

const shiftNotFound = "Shift not found"

type ShiftHandler struct {
	trace           *telemetry.Trace
	shiftService *service.ShiftService
}

func NewShiftHandler(trace *telemetry.Trace, shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{trace: trace, shiftService: shiftService}
}

// List 班表列表，date 代表當天整日
// @Summary 取得班表列表
// @Tags Shift
// @Security BearerAuth
// @Produce json
// @Param employeeId query string false "員工 ID"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} dto.ShiftResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var query dto.ShiftQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	shifts, err := h.shiftService.List(ctx, &query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, shifts)
}

// Create 新增班表
// @Summary 新增班表
// @Tags Shift
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateShiftDto true "班表資料"
// @Success 201 {object} dto.ShiftResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/shifts [post]
func (h *ShiftHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateShiftDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.shiftService.Create(ctx, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Get 取得單一班表
// @Summary 取得單一班表
// @Tags Shift
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponseDto
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseResourceID(c, "id", shiftNotFound)
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.shiftService.Get(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Update 部分更新班表；startTime / endTime 同時提供時才比較先後
// @Summary 更新班表
// @Tags Shift
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param body body dto.UpdateShiftDto true "要更新的欄位"
// @Success 200 {object} dto.ShiftResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/shifts/{id} [put]
func (h *ShiftHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseResourceID(c, "id", shiftNotFound)
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.UpdateShiftDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.shiftService.Update(ctx, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Delete 刪除班表
// @Summary 刪除班表
// @Tags Shift
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseResourceID(c, "id", shiftNotFound)
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	if err := h.shiftService.Delete(ctx, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Shift deleted successfully"})
}
