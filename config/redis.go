package config

type Redis struct {
	Host     string `mapstructure:"HOST" json:"host" yaml:"host" validate:"required"`
	Port     int    `mapstructure:"PORT" json:"port" yaml:"port" validate:"required"`
	Password string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB       int    `mapstructure:"DB" json:"db" yaml:"db"`
}
