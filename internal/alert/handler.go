package alert

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"github.com/25x8/sre-stack/internal/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// MaxBodySize ограничивает размер тела вебхука
const MaxBodySize = 1 << 20

// Handler принимает вебхуки Alertmanager и пересылает оповещения в чат
type Handler struct {
	Notifier notifier.Notifier
	Metrics  *metrics.Registry
}

// NewHandler - конструктор для Handler
func NewHandler(n notifier.Notifier, reg *metrics.Registry) *Handler {
	return &Handler{
		Notifier: n,
		Metrics:  reg,
	}
}

// HandleWebhook разбирает тело вебхука и синхронно отправляет по одному
// сообщению на каждое оповещение. Ошибки отправки логируются, на ответ
// они не влияют: при корректном JSON всегда возвращается пустой 200.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.Named("alert").With(zap.String("request_id", r.Header.Get(logger.RequestIDHeader)))

	var hook Webhook
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := decoder.Decode(&hook); err != nil {
		log.Warn("invalid webhook payload", zap.Error(err))
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	log.Info("webhook received",
		zap.String("status", hook.Status),
		zap.String("receiver", hook.Receiver),
		zap.Int("alerts", len(hook.Alerts)),
	)

	// Отключение отправителя вебхука не прерывает рассылку,
	// каждый вызов ограничен таймаутом клиента
	ctx := context.WithoutCancel(r.Context())

	for i, a := range hook.Alerts {
		h.count(metrics.AlertsReceivedTotal, nil)

		err := h.Notifier.Notify(ctx, FormatMessage(a))
		if err != nil {
			h.count(metrics.NotificationsTotal, prometheus.Labels{"result": metrics.ResultError})
			log.Error("failed to send notification",
				zap.Int("index", i),
				zap.String("alertname", a.Name()),
				zap.Error(err),
			)
			continue
		}

		h.count(metrics.NotificationsTotal, prometheus.Labels{"result": metrics.ResultSuccess})
		log.Debug("notification sent",
			zap.Int("index", i),
			zap.String("alertname", a.Name()),
		)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) count(name string, labels prometheus.Labels) {
	if h.Metrics == nil {
		return
	}
	if err := h.Metrics.Increment(name, labels); err != nil {
		logger.Log.Warn("failed to count", zap.String("metric", name), zap.Error(err))
	}
}
