package validate

import (
	"errors"
	"io"

	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseResourceID 解析路徑上的 ObjectID；格式不合的 id 不可能存在，直接視為 NotFound
func ParseResourceID(c *gin.Context, key string, notFoundDesc string) (id primitive.ObjectID, cause error, responseErr error) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		return primitive.NilObjectID, err, cErr.NotFound(notFoundDesc)
	}
	return id, nil, nil
}

// BindAndValidate 解析 JSON body 並驗證；未知欄位忽略
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return err, cErr.ValidateErr("Invalid request body: empty body")
		}
		return err, request.GetError(req, err)
	}
	return nil, nil
}

// BindQuery 解析 query string 並驗證
func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		return err, request.GetError(req, err)
	}
	return nil, nil
}

// Struct 對已解析好的 DTO 跑一次 binding 驗證（例如依 action 再分派的 body）
func Struct(req any) (cause error, responseErr error) {
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return err, request.GetError(req, err)
	}
	return nil, nil
}
