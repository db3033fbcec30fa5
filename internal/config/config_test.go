package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RuntimeMetrics)
	assert.Equal(t, time.Duration(0), cfg.MonitorPeriod())
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfig_File(t *testing.T) {
	path := writeConfig(t, `{"address":"127.0.0.1:9000","monitor_interval":15,"runtime_metrics":false}`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RuntimeMetrics)
	assert.Equal(t, 15*time.Second, cfg.MonitorPeriod())
}

func TestLoadServerConfig_Errors(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadServerConfig(writeConfig(t, `{"address":`))
	assert.Error(t, err)
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr error
	}{
		{name: "Valid", cfg: ServerConfig{Address: ":5000"}},
		{name: "Empty address", cfg: ServerConfig{}, wantErr: ErrEmptyAddress},
		{name: "Negative interval", cfg: ServerConfig{Address: ":5000", MonitorInterval: -1}, wantErr: ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadAlertConfig_Defaults(t *testing.T) {
	cfg, err := LoadAlertConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Equal(t, 10*time.Second, cfg.SendTimeoutDuration())

	// Без учетных данных Telegram конфигурация невалидна
	err = cfg.Validate()
	assert.ErrorIs(t, err, ErrMissingTelegramToken)
	assert.ErrorIs(t, err, ErrMissingTelegramChatID)
}

func TestLoadAlertConfig_File(t *testing.T) {
	path := writeConfig(t, `{"telegram_token":"123:ABC","telegram_chat_id":"-1001","send_timeout":3}`)

	cfg, err := LoadAlertConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123:ABC", cfg.TelegramToken)
	assert.Equal(t, "-1001", cfg.TelegramChatID)
	assert.Equal(t, 3*time.Second, cfg.SendTimeoutDuration())
	assert.NoError(t, cfg.Validate())
}

func TestAlertConfig_Validate(t *testing.T) {
	valid := AlertConfig{Address: ":8080", TelegramToken: "t", TelegramChatID: "c", SendTimeout: 10}

	tests := []struct {
		name    string
		mutate  func(c *AlertConfig)
		wantErr error
	}{
		{name: "Valid", mutate: func(c *AlertConfig) {}},
		{name: "Missing token", mutate: func(c *AlertConfig) { c.TelegramToken = "" }, wantErr: ErrMissingTelegramToken},
		{name: "Missing chat", mutate: func(c *AlertConfig) { c.TelegramChatID = "" }, wantErr: ErrMissingTelegramChatID},
		{name: "Zero timeout", mutate: func(c *AlertConfig) { c.SendTimeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "Empty address", mutate: func(c *AlertConfig) { c.Address = "" }, wantErr: ErrEmptyAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
