package metrics

import (
	"net/http"

	"github.com/25x8/sre-stack/internal/logger"
	"go.uber.org/zap"
)

// Handler отдает содержимое реестра в текстовом формате экспозиции.
// Вывод строится заново на каждый запрос.
func Handler(reg *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := reg.Render()
		if err != nil {
			logger.Log.Error("failed to render metrics", zap.Error(err))
			http.Error(w, "Failed to render metrics", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}
