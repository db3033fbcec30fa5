package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/25x8/sre-stack/internal/alert"
	"github.com/25x8/sre-stack/internal/handler"
	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"github.com/25x8/sre-stack/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ShutdownTimeout ограничивает ожидание активных запросов при остановке
const ShutdownTimeout = 5 * time.Second

// readMethods - методы маршрутов только для чтения, HEAD отвечает как GET без тела
var readMethods = []string{http.MethodGet, http.MethodHead}

// wrapHandler собирает общую цепочку middleware
func wrapHandler(h http.Handler) http.Handler {
	return middleware.RequestID(
		middleware.GzipMiddleware(
			logger.RequestLogger(h),
		),
	)
}

// InitializeRouter создает роутер сервиса метрик
func InitializeRouter(h *handler.Handler) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/", wrapHandler(http.HandlerFunc(h.HandleIndex))).Methods(readMethods...)
	r.Handle("/health", wrapHandler(http.HandlerFunc(h.HandleHealth))).Methods(readMethods...)
	r.Handle("/status", wrapHandler(http.HandlerFunc(h.HandleStatus))).Methods(readMethods...)

	// Скрейпы считаются отдельно в promhttp_metric_handler_requests_total
	metricsHandler := promhttp.InstrumentMetricHandler(h.Metrics.Registerer(), http.HandlerFunc(h.HandleMetrics))
	r.Handle("/metrics", wrapHandler(metricsHandler)).Methods(readMethods...)

	return r
}

// InitializeAlertRouter создает роутер пересыльщика оповещений
func InitializeAlertRouter(h *alert.Handler, reg *metrics.Registry) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/", wrapHandler(http.HandlerFunc(h.HandleWebhook))).Methods(http.MethodPost)

	metricsHandler := promhttp.InstrumentMetricHandler(reg.Registerer(), metrics.Handler(reg))
	r.Handle("/metrics", wrapHandler(metricsHandler)).Methods(readMethods...)

	return r
}

// Serve обслуживает запросы на addr до отмены ctx,
// затем дожидается активных запросов не дольше ShutdownTimeout.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Log.Info("Server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	logger.Log.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}
