package config

// Suno 外部音樂生成服務（SunoAPI）連線設定
type Suno struct {
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"API_KEY" json:"-" yaml:"api_key" validate:"required"`
	// HTTP client 逾時（毫秒），0 表示不設限
	Timeout int64 `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout" validate:"gte=0"`
	// 上游探測排程（含秒的 cron 表示式），空字串表示停用
	ProbeCron string `mapstructure:"PROBE_CRON" json:"probe_cron" yaml:"probe_cron"`
}
