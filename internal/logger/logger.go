// Package logger держит общий zap-логер процесса и middleware журнала запросов.
package logger

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDHeader - заголовок, по которому связываются записи одного запроса.
const RequestIDHeader = "X-Request-ID"

// Log доступен всему коду как синглтон.
// Заменяется только в Initialize и в тестах, до инициализации пишет в никуда.
var Log *zap.Logger = zap.NewNop()

// Initialize заменяет Log JSON-логером уровня level, пишущим в stdout.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Sampling = nil
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// Named возвращает дочерний логер с именем компонента.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync сбрасывает буферы логера
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// RequestLogger пишет одну запись на запрос. Поле endpoint совпадает
// с шаблоном маршрута mux, то есть с меткой endpoint счетчика запросов.
// Уровень записи зависит от кода ответа: 5xx - error, 4xx - warn.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("endpoint", endpoint(r)),
			zap.String("request_id", r.Header.Get(RequestIDHeader)),
			zap.Int("status", rec.status),
			zap.Int("size", rec.size),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			Log.Error("Request", fields...)
		case rec.status >= http.StatusBadRequest:
			Log.Warn("Request", fields...)
		default:
			Log.Info("Request", fields...)
		}
	})
}

// endpoint возвращает шаблон маршрута или путь, если маршрут не найден
func endpoint(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// statusRecorder запоминает код и размер ответа
type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(data []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(data)
	w.size += n
	return n, err
}
