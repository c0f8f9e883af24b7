package dto

import (
	"shiftboard/internal/core"
	"shiftboard/internal/pkg/request"
)

const (
	AuthActionLogin    = "login"
	AuthActionRegister = "register"
	AuthActionLogout   = "logout"
)

// AuthRequestDto POST /api/auth 的原始 body，依 action 再轉成對應的 DTO 驗證
type AuthRequestDto struct {
	Action   string    `json:"action" example:"login"`
	Email    string    `json:"email,omitempty" example:"ann@example.com"`
	Password string    `json:"password,omitempty" example:"secret123"`
	Name     string    `json:"name,omitempty" example:"Ann Lee"`
	Role     core.Role `json:"role,omitempty" example:"employee"`
}

func (r *AuthRequestDto) Login() *LoginDto {
	return &LoginDto{Email: r.Email, Password: r.Password}
}

func (r *AuthRequestDto) Register() *RegisterDto {
	return &RegisterDto{Email: r.Email, Password: r.Password, Name: r.Name, Role: r.Role}
}

type LoginDto struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (LoginDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"email.required":    "Invalid email address",
		"email.email":       "Invalid email address",
		"password.required": "Password must be at least 6 characters",
		"password.min":      "Password must be at least 6 characters",
	}
}

type RegisterDto struct {
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=6"`
	Name     string    `json:"name" binding:"required,min=2"`
	Role     core.Role `json:"role" binding:"required,oneof=admin employee"`
}

func (RegisterDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"email.required":    "Invalid email address",
		"email.email":       "Invalid email address",
		"password.required": "Password must be at least 6 characters",
		"password.min":      "Password must be at least 6 characters",
		"name.required":     "Name must be at least 2 characters",
		"name.min":          "Name must be at least 2 characters",
		"role.required":     "Role must be admin or employee",
		"role.oneof":        "Role must be admin or employee",
	}
}

type UserResponseDto struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Role  core.Role `json:"role"`
	Name  string    `json:"name"`
}
