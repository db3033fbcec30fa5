package config

import (
	"errors"
	"time"
)

// AlertConfig - настройки пересыльщика оповещений
type AlertConfig struct {
	Address        string `json:"address"`
	LogLevel       string `json:"log_level"`
	RuntimeMetrics bool   `json:"runtime_metrics"`
	TelegramToken  string `json:"telegram_token"`
	TelegramChatID string `json:"telegram_chat_id"`
	TelegramAPIURL string `json:"telegram_api_url"`
	// SendTimeout в секундах
	SendTimeout int `json:"send_timeout"`
}

func LoadAlertConfig(filePath string) (*AlertConfig, error) {
	config := &AlertConfig{
		Address:        "0.0.0.0:8080",
		LogLevel:       "info",
		RuntimeMetrics: true,
		TelegramAPIURL: "https://api.telegram.org",
		SendTimeout:    10,
	}

	if err := loadJSON(filePath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// SendTimeoutDuration возвращает таймаут одного вызова Bot API
func (c *AlertConfig) SendTimeoutDuration() time.Duration {
	return time.Duration(c.SendTimeout) * time.Second
}

// Validate проверяет конфигурацию при старте: без токена и чата
// пересыльщик не запускается.
func (c *AlertConfig) Validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, ErrEmptyAddress)
	}
	if c.TelegramToken == "" {
		errs = append(errs, ErrMissingTelegramToken)
	}
	if c.TelegramChatID == "" {
		errs = append(errs, ErrMissingTelegramChatID)
	}
	if c.SendTimeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	return errors.Join(errs...)
}
