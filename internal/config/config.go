package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrEmptyAddress          = errors.New("address is required")
	ErrMissingTelegramToken  = errors.New("TELEGRAM_TOKEN is required")
	ErrMissingTelegramChatID = errors.New("TELEGRAM_CHAT_ID is required")
	ErrInvalidTimeout        = errors.New("send timeout must be positive")
	ErrInvalidInterval       = errors.New("monitor interval must not be negative")
)

// loadJSON накладывает содержимое JSON-файла на уже заполненную
// значениями по умолчанию структуру. Пустой путь - не ошибка.
func loadJSON(filePath string, dst any) error {
	if filePath == "" {
		return nil
	}

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filePath, err)
	}

	if err := json.Unmarshal(file, dst); err != nil {
		return fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return nil
}
