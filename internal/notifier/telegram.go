package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTelegramAPIURL - адрес Bot API по умолчанию
const DefaultTelegramAPIURL = "https://api.telegram.org"

// ParseModeMarkdown - режим разметки отправляемых сообщений
const ParseModeMarkdown = "Markdown"

// DefaultTimeout ограничивает один вызов sendMessage
const DefaultTimeout = 10 * time.Second

// maxErrorBody ограничивает чтение тела ответа с ошибкой
const maxErrorBody = 4096

var ErrTelegramAPI = errors.New("telegram api error")

// SendMessageRequest - тело запроса sendMessage
type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse - общий конверт ответа Bot API
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// TelegramSender отправляет сообщения в чат через Telegram Bot API
type TelegramSender struct {
	APIURL string
	Token  string
	ChatID string
	Client *http.Client
}

// NewTelegramSender - конструктор для TelegramSender.
// Пустой apiURL заменяется на DefaultTelegramAPIURL, неположительный timeout - на DefaultTimeout.
func NewTelegramSender(apiURL, token, chatID string, timeout time.Duration) *TelegramSender {
	if apiURL == "" {
		apiURL = DefaultTelegramAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &TelegramSender{
		APIURL: strings.TrimRight(apiURL, "/"),
		Token:  token,
		ChatID: chatID,
		Client: &http.Client{Timeout: timeout},
	}
}

// SendMessageURL возвращает адрес метода sendMessage для токена бота
func (s *TelegramSender) SendMessageURL() string {
	return fmt.Sprintf("%s/bot%s/sendMessage", s.APIURL, s.Token)
}

// Notify отправляет text в настроенный чат. Повторных попыток нет.
func (s *TelegramSender) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(SendMessageRequest{
		ChatID:    s.ChatID,
		Text:      text,
		ParseMode: ParseModeMarkdown,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.SendMessageURL(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		// В тексте ошибки url.Error содержит токен бота
		return fmt.Errorf("send message: %w", redact(err, s.Token))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && apiResp.Description != "" {
			return fmt.Errorf("%w: status %d: %s", ErrTelegramAPI, resp.StatusCode, apiResp.Description)
		}
		return fmt.Errorf("%w: status %d", ErrTelegramAPI, resp.StatusCode)
	}

	if decodeErr == nil && !apiResp.OK {
		return fmt.Errorf("%w: %s", ErrTelegramAPI, apiResp.Description)
	}

	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{
		msg: strings.ReplaceAll(err.Error(), token, "<token>"),
		err: err,
	}
}
