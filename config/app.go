package config

type App struct {
	// 當前開發環境
	Env string `mapstructure:"ENV" json:"env" yaml:"env" validate:"omitempty,oneof=local development test staging production"`
	// 服務端口
	Port uint32 `mapstructure:"PORT" json:"port" yaml:"port" validate:"required"`
	// 服務名稱（同時作為 metric 前綴）
	Name string `mapstructure:"NAME" json:"name" yaml:"name" validate:"required"`
	// 服務版本
	Version        string `mapstructure:"VERSION" json:"version" yaml:"version"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
	// 前端網域，CORS 需要帶 cookie 時不可用 *
	AllowOrigins []string `mapstructure:"ALLOW_ORIGINS" json:"allow_origins" yaml:"allow_origins"`
}
