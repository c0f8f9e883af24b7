package handler

import (
	"time"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"
	"shiftboard/utils/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	trace       *telemetry.Trace
	config      *config.Configuration
	authService *service.AuthService
}

func NewAuthHandler(trace *telemetry.Trace, config *config.Configuration, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{trace: trace, config: config, authService: authService}
}

// Handle 依 action 分派 login / register / logout
// @Summary 登入、註冊、登出
// @Description action = login | register | logout；成功時以 httpOnly cookie 回傳 token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.AuthRequestDto true "action 與對應欄位"
// @Success 200 {object} dto.UserResponseDto
// @Success 201 {object} dto.UserResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/auth [post]
func (h *AuthHandler) Handle(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.AuthRequestDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	h.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Action: req.Action, Email: req.Email})

	switch req.Action {
	case dto.AuthActionLogin:
		login := req.Login()
		if cause, respErr := validate.Struct(login); cause != nil {
			end(cause)
			response.AbortWithError(c, respErr)
			return
		}
		session, err := h.authService.Login(ctx, login)
		if err != nil {
			end(err)
			response.AbortWithError(c, err)
			return
		}
		h.setSession(c, session)
		response.Success(c, gin.H{"message": "Login successful", "user": session.User, "token": session.Token})

	case dto.AuthActionRegister:
		register := req.Register()
		if cause, respErr := validate.Struct(register); cause != nil {
			end(cause)
			response.AbortWithError(c, respErr)
			return
		}
		session, err := h.authService.Register(ctx, register)
		if err != nil {
			end(err)
			response.AbortWithError(c, err)
			return
		}
		h.setSession(c, session)
		response.Create(c, gin.H{"message": "Registration successful", "user": session.User, "token": session.Token})

	case dto.AuthActionLogout:
		token, _ := auth.TokenFromRequest(c, h.config.Auth.CookieName)
		if token != "" {
			if err := h.authService.Logout(ctx, token); err != nil {
				end(err)
				response.AbortWithError(c, err)
				return
			}
		}
		auth.ClearTokenCookie(c, h.config.Auth)
		response.Success(c, gin.H{"message": "Logout successful"})

	default:
		response.AbortWithError(c, cErr.InvalidAction("Invalid action"))
	}
}

func (h *AuthHandler) setSession(c *gin.Context, session *service.Session) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = h.config.Auth.TokenTTL()
	}
	auth.SetTokenCookie(c, h.config.Auth, session.Token, ttl)
}
