package config

type MongoDB struct {
	URI      string `mapstructure:"URI" json:"uri" yaml:"uri" validate:"required"`
	Options  string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
}
