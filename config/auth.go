package config

import "time"

type Auth struct {
	// 簽發 JWT 用的密鑰，啟動後唯讀
	JWTSecret     string `mapstructure:"JWT_SECRET" json:"jwt_secret" yaml:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS" json:"token_ttl_hours" yaml:"token_ttl_hours"`
	CookieName    string `mapstructure:"COOKIE_NAME" json:"cookie_name" yaml:"cookie_name"`
	CookieSecure  bool   `mapstructure:"COOKIE_SECURE" json:"cookie_secure" yaml:"cookie_secure"`
	BcryptCost    int    `mapstructure:"BCRYPT_COST" json:"bcrypt_cost" yaml:"bcrypt_cost"`
	// 同一 IP 在視窗內可呼叫 /api/auth 的次數（需啟用 Redis）
	LoginLimit         int   `mapstructure:"LOGIN_LIMIT" json:"login_limit" yaml:"login_limit"`
	LoginWindowSeconds int64 `mapstructure:"LOGIN_WINDOW_SECONDS" json:"login_window_seconds" yaml:"login_window_seconds"`
}

func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

func (a Auth) LoginWindow() time.Duration {
	return time.Duration(a.LoginWindowSeconds) * time.Second
}
