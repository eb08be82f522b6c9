package config

type Session struct {
	// 簽署 session token 的 HMAC 金鑰
	Secret     string `mapstructure:"SECRET" json:"-" yaml:"secret" validate:"required,min=16"`
	Issuer     string `mapstructure:"ISSUER" json:"issuer" yaml:"issuer"`
	CookieName string `mapstructure:"COOKIE_NAME" json:"cookie_name" yaml:"cookie_name"`
	// token 有效時間（分鐘），0 時使用預設 7 天
	TTLMinutes int64 `mapstructure:"TTL_MINUTES" json:"ttl_minutes" yaml:"ttl_minutes" validate:"gte=0"`
}
