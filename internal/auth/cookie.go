package auth

import (
	"net/http"
	"strings"
	"time"

	"shiftboard/config"

	"github.com/gin-gonic/gin"
)

type TokenSource string

const (
	TokenFromHeader TokenSource = "header"
	TokenFromCookie TokenSource = "cookie"
	TokenMissing    TokenSource = "none"
)

// TokenFromRequest 先讀 Authorization: Bearer，再退回 cookie
func TokenFromRequest(c *gin.Context, cookieName string) (string, TokenSource) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), TokenFromHeader
		}
	}
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token, TokenFromCookie
	}
	return "", TokenMissing
}

func SetTokenCookie(c *gin.Context, conf config.Auth, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(conf.CookieName, token, int(ttl.Seconds()), "/", "", conf.CookieSecure, true)
}

func ClearTokenCookie(c *gin.Context, conf config.Auth) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(conf.CookieName, "", -1, "/", "", conf.CookieSecure, true)
}
