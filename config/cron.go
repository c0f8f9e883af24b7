package config

type Cron struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 六欄位 cron 表達式（含秒）
	ShiftCompletionSpec string `mapstructure:"SHIFT_COMPLETION_SPEC" json:"shift_completion_spec" yaml:"shift_completion_spec"`
}
