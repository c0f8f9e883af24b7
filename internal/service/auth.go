package service

import (
	"context"
	"errors"
	"time"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/telemetry"

	"go.mongodb.org/mongo-driver/mongo"
)

// Session 登入 / 註冊成功後要回給 handler 的內容
type Session struct {
	User      *dto.UserResponseDto
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	trace   *telemetry.Trace
	config  *config.Configuration
	users   UserStore
	tokens  *auth.TokenManager
	revoker auth.Revoker
}

func NewAuthService(
	trace *telemetry.Trace,
	config *config.Configuration,
	users UserStore,
	tokens *auth.TokenManager,
	revoker auth.Revoker,
) *AuthService {
	return &AuthService{trace: trace, config: config, users: users, tokens: tokens, revoker: revoker}
}

// Login 帳號或密碼錯誤一律回同一個訊息
func (s *AuthService) Login(ctx context.Context, req *dto.LoginDto) (*Session, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.InvalidCredentials("Invalid credentials")
		}
		return nil, cErr.DatabaseError("database Login error")
	}
	if !auth.ComparePassword(user.PasswordHash, req.Password) {
		return nil, cErr.InvalidCredentials("Invalid credentials")
	}
	return s.newSession(user)
}

// Register 建立使用者並直接登入
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterDto) (*Session, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

// CreateAdmin 給 create-admin 指令使用，不簽發 token
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) (*dto.UserResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	user, err := s.createUser(ctx, email, password, name, core.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return modelToUserResponseDto(user), nil
}

// Logout 撤銷出示的 token；token 無效或已過期時不做任何事
func (s *AuthService) Logout(ctx context.Context, token string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if token == "" {
		return nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return cErr.ServiceUnavailable("revoke token failed")
	}
	return nil
}

func (s *AuthService) createUser(ctx context.Context, email, password, name string, role core.Role) (*model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, cErr.DatabaseError("database ExistsByEmail error")
	}
	if exists {
		return nil, cErr.Conflict("User already exists")
	}

	hash, err := auth.HashPassword(password, s.config.Auth.BcryptCost)
	if err != nil {
		return nil, cErr.InternalServer("hash password failed")
	}
	created, err := s.users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
	})
	if err != nil {
		return nil, storeError(err, "User not found", "User already exists", "CreateUser")
	}
	return created, nil
}

func (s *AuthService) newSession(user *model.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.Caller())
	if err != nil {
		return nil, cErr.InternalServer("issue token failed")
	}
	return &Session{User: modelToUserResponseDto(user), Token: token, ExpiresAt: expiresAt}, nil
}

func modelToUserResponseDto(user *model.User) *dto.UserResponseDto {
	return &dto.UserResponseDto{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
	}
}
