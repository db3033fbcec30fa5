package middleware

import (
	"net/http"

	"github.com/25x8/sre-stack/internal/logger"
	"github.com/google/uuid"
)

// RequestID пробрасывает X-Request-ID клиента или генерирует новый
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(logger.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
			r.Header.Set(logger.RequestIDHeader, reqID)
		}
		w.Header().Set(logger.RequestIDHeader, reqID)
		next.ServeHTTP(w, r)
	})
}
