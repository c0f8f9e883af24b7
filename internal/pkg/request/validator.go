package request

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"shiftboard/internal/core"
	cErr "shiftboard/internal/pkg/error"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Validator interface {
	GetMessages() ValidatorMessages
}

// ValidatorMessages 以 "欄位.規則" 為 key 的錯誤訊息
type ValidatorMessages map[string]string

// StructRule 跨欄位規則，註冊到指定的 struct 型別上
type StructRule struct {
	Fn    validator.StructLevelFunc
	Types []any
}

var (
	reg       = regexp.MustCompile(`\[\d\]`)
	setupOnce sync.Once
	setupErr  error
)

// Setup 在 gin 預設的 validator 上註冊自訂規則，重複呼叫只生效一次
func Setup(rules ...StructRule) error {
	setupOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		setupErr = Register(engine, rules...)
	})
	return setupErr
}

// Register 將 JSON 欄位名、ymd/ymdhm 格式與跨欄位規則掛到 engine
func Register(engine *validator.Validate, rules ...StructRule) error {
	engine.RegisterTagNameFunc(fieldName)
	if err := engine.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := core.ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	if err := engine.RegisterValidation("ymdhm", func(fl validator.FieldLevel) bool {
		_, err := core.ParseDateTime(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	for _, rule := range rules {
		engine.RegisterStructValidation(rule.Fn, rule.Types...)
	}
	return nil
}

func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// GetError 從請求和錯誤中獲取錯誤信息，每個欄位只保留第一則訊息
func GetError(request interface{}, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err == nil {
			return cErr.ValidateErr("Parameter error")
		}
		return cErr.ValidateErr(fmt.Sprintf("Invalid request body: %s", err.Error()))
	}

	var messages ValidatorMessages
	if v, ok := request.(Validator); ok {
		messages = v.GetMessages()
	}

	details := map[string]string{}
	var ordered []string
	for _, v := range validationErrors {
		field := reg.ReplaceAllString(v.Field(), ".*")
		if _, seen := details[field]; seen {
			continue
		}
		message, exist := messages[field+"."+v.Tag()]
		if !exist {
			message = defaultMessage(field, v)
		}
		details[field] = message
		ordered = append(ordered, message)
	}
	if len(ordered) == 0 {
		return cErr.ValidateErr("Parameter error")
	}
	return cErr.Validation(strings.Join(ordered, ", "), details)
}

func defaultMessage(field string, v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, v.Param())
	case "ymd":
		return field + " must be a date in YYYY-MM-DD format"
	case "ymdhm":
		return field + " must be a datetime in YYYY-MM-DDTHH:MM format"
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, v.Tag())
}
