package core

import "github.com/golang-jwt/jwt/v4"

const (
	ContextCallerKey    = "auth_caller"
	ContextRequestIDKey = "request_id"
	ContextStartKey     = "requestDuration"
)

// Caller 已驗證的請求者身分
type Caller struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func (c *Claims) Caller() *Caller {
	return &Caller{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
		Name:  c.Name,
	}
}
