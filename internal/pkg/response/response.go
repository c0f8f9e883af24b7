package response

import (
	"net/http"

	cErr "shiftboard/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

type Response struct {
	RequestID   string            `json:"requestID"`
	Code        int               `json:"code"`
	Data        any               `json:"data"`
	Message     string            `json:"message"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details,omitempty"`
}

// splitMessage 從 gin.H 取出 message，其餘欄位作為 data
func splitMessage(data any, fallback string) (any, string) {
	msg, ok := data.(gin.H)
	if !ok {
		return data, fallback
	}
	s, ok := msg["message"].(string)
	if !ok || s == "" {
		return data, fallback
	}
	delete(msg, "message")
	if len(msg) == 0 {
		return nil, s
	}
	return msg, s
}

func Create(c *gin.Context, data any) {
	data, message := splitMessage(data, "Create Success")
	c.Status(http.StatusCreated)
	c.Set("data", data)
	c.Set("message", message)
	c.Abort()
}

func Success(c *gin.Context, data any) {
	data, message := splitMessage(data, "Request Success")
	c.Set("data", data)
	c.Set("message", message)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, RequestID string, httpCode int, errorCode int, msg string, desc string, details ...map[string]string) {
	res := Response{
		RequestID:   RequestID,
		Code:        errorCode,
		Data:        nil,
		Message:     msg,
		Description: desc,
	}
	if len(details) > 0 {
		res.Details = details[0]
	}
	c.JSON(httpCode, res)
	c.Abort()
}

func FailByErr(c *gin.Context, RequestID string, err error) {
	v, ok := err.(*cErr.Error)
	if ok {
		Fail(c, RequestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc(), v.Details())
	} else {
		Fail(c, RequestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
	}
}
