package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Auth      Auth            `mapstructure:"AUTH" json:"auth" yaml:"auth"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Cron      Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
}

// ApplyDefaults fills the zero values viper leaves behind when a key is absent.
func (c *Configuration) ApplyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if c.App.Name == "" {
		c.App.Name = "shiftboard"
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24 * 7
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Auth.LoginLimit <= 0 {
		c.Auth.LoginLimit = 10
	}
	if c.Auth.LoginWindowSeconds <= 0 {
		c.Auth.LoginWindowSeconds = 60
	}
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = "shiftboard"
	}
	if c.Cron.ShiftCompletionSpec == "" {
		c.Cron.ShiftCompletionSpec = "0 */10 * * * *"
	}
}
