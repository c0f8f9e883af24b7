package dto

import (
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/pkg/request"
)

type CreateEmployeeDto struct {
	Name       string              `json:"name" binding:"required,min=2" example:"Ann Lee"`
	Email      string              `json:"email" binding:"required,email" example:"ann@x.io"`
	Phone      string              `json:"phone" binding:"required,min=10" example:"5551234567"`
	Position   string              `json:"position" binding:"required,min=2" example:"Cashier"`
	Department string              `json:"department" binding:"required,min=2" example:"Retail"`
	HireDate   string              `json:"hireDate" binding:"required,ymd" example:"2024-01-15"`
	Status     core.EmployeeStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive" example:"active"`
	UserID     string              `json:"userId,omitempty" binding:"omitempty,len=24,hexadecimal"`
}

func (CreateEmployeeDto) GetMessages() request.ValidatorMessages {
	return employeeMessages
}

// UpdateEmployeeDto 所有欄位皆可省略，只更新有提供的欄位
type UpdateEmployeeDto struct {
	Name       *string              `json:"name,omitempty" binding:"omitempty,min=2"`
	Email      *string              `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string              `json:"phone,omitempty" binding:"omitempty,min=10"`
	Position   *string              `json:"position,omitempty" binding:"omitempty,min=2"`
	Department *string              `json:"department,omitempty" binding:"omitempty,min=2"`
	HireDate   *string              `json:"hireDate,omitempty" binding:"omitempty,ymd"`
	Status     *core.EmployeeStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	UserID     *string              `json:"userId,omitempty" binding:"omitempty,len=24,hexadecimal"`
}

func (UpdateEmployeeDto) GetMessages() request.ValidatorMessages {
	return employeeMessages
}

var employeeMessages = request.ValidatorMessages{
	"name.required":       "Name must be at least 2 characters",
	"name.min":            "Name must be at least 2 characters",
	"email.required":      "Invalid email address",
	"email.email":         "Invalid email address",
	"phone.required":      "Phone must be at least 10 characters",
	"phone.min":           "Phone must be at least 10 characters",
	"position.required":   "Position is required",
	"position.min":        "Position is required",
	"department.required": "Department is required",
	"department.min":      "Department is required",
	"hireDate.required":   "Invalid date format",
	"hireDate.ymd":        "Invalid date format",
	"status.oneof":        "Status must be active or inactive",
	"userId.len":          "Invalid user id",
	"userId.hexadecimal":  "Invalid user id",
}

type EmployeeResponseDto struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Position   string              `json:"position"`
	Department string              `json:"department"`
	HireDate   time.Time           `json:"hireDate"`
	Status     core.EmployeeStatus `json:"status"`
	UserID     string              `json:"userId,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}
