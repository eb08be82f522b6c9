package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultAppName           = "soundgate"
	DefaultSunoBaseURL       = "https://api.sunoapi.org"
	DefaultSessionCookieName = "soundgate_session"
	DefaultSessionTTLMinutes = 7 * 24 * 60
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ApplyDefaults 補上未設定的欄位，需在 Validate 之前呼叫
func (c *Configuration) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = DefaultAppName
	}
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = c.App.Name
	}
	if c.Suno.BaseURL == "" {
		c.Suno.BaseURL = DefaultSunoBaseURL
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultSessionCookieName
	}
	if c.Session.Issuer == "" {
		c.Session.Issuer = c.App.Name
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = DefaultSessionTTLMinutes
	}
}

// Validate 依 struct tag 檢查設定，只回報第一個不合法的欄位
func (c *Configuration) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return fmt.Errorf("invalid config %s: failed on '%s' rule", fieldErr.Namespace(), fieldErr.Tag())
	}
	return err
}
