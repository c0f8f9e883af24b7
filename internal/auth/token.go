package auth

import (
	"errors"
	"fmt"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager 簽發與驗證 HS256 JWT
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(conf *config.Configuration) (*TokenManager, error) {
	if conf.Auth.JWTSecret == "" {
		return nil, errors.New("AUTH__JWT_SECRET is required")
	}
	return &TokenManager{
		secret: []byte(conf.Auth.JWTSecret),
		ttl:    conf.Auth.TokenTTL(),
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue 簽發帶有 {id,email,role,name} 的 token
func (m *TokenManager) Issue(caller *core.Caller) (string, time.Time, error) {
	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.ttl)
	claims := core.Claims{
		UserID: caller.ID,
		Email:  caller.Email,
		Role:   caller.Role,
		Name:   caller.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify 驗證簽章、演算法與有效期限，失敗一律回傳錯誤值
func (m *TokenManager) Verify(tokenString string) (*core.Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}
	claims := &core.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
