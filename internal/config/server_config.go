package config

import "time"

// ServerConfig - настройки сервиса метрик
type ServerConfig struct {
	Address        string `json:"address"`
	LogLevel       string `json:"log_level"`
	RuntimeMetrics bool   `json:"runtime_metrics"`
	// MonitorInterval в секундах, 0 отключает сбор метрик хоста
	MonitorInterval int `json:"monitor_interval"`
}

func LoadServerConfig(filePath string) (*ServerConfig, error) {
	config := &ServerConfig{
		Address:         "0.0.0.0:5000",
		LogLevel:        "info",
		RuntimeMetrics:  true,
		MonitorInterval: 0,
	}

	if err := loadJSON(filePath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// MonitorPeriod возвращает период сбора метрик хоста
func (c *ServerConfig) MonitorPeriod() time.Duration {
	return time.Duration(c.MonitorInterval) * time.Second
}

func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}
	if c.MonitorInterval < 0 {
		return ErrInvalidInterval
	}
	return nil
}
