package handler

import (
	"encoding/json"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"go.uber.org/zap"
)

// Границы симулированных значений /status
const (
	cpuMin    = 0.1
	cpuMax    = 0.9
	memoryMin = 0.2
	memoryMax = 0.8
)

// WelcomeMessage - текст ответа корневого маршрута
const WelcomeMessage = "Welcome to SRE Final Project"

// IndexResponse - ответ GET /
type IndexResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse - ответ GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// StatusResponse - ответ GET /status
type StatusResponse struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
}

type Handler struct {
	Metrics *metrics.Registry
	// Now и Rand подменяются в тестах
	Now  func() time.Time
	Rand func() float64
}

// NewHandler - конструктор для Handler
func NewHandler(reg *metrics.Registry) *Handler {
	return &Handler{
		Metrics: reg,
		Now:     time.Now,
		Rand:    rand.Float64,
	}
}

// HandleIndex - обработчик корневого маршрута
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.countRequest(r.Method, "/")
	writeJSON(w, IndexResponse{Status: "OK", Message: WelcomeMessage})
}

// HandleHealth - обработчик проверки живости
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.countRequest(r.Method, "/health")
	writeJSON(w, HealthResponse{Status: "healthy", Timestamp: h.Now().Unix()})
}

// HandleStatus - обработчик симулированного состояния ресурсов
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		CPUUsage:    h.uniform(cpuMin, cpuMax),
		MemoryUsage: h.uniform(memoryMin, memoryMax),
	}

	if err := h.Metrics.SetGauge(metrics.CPUUsage, resp.CPUUsage); err != nil {
		logger.Log.Warn("failed to set gauge", zap.String("metric", metrics.CPUUsage), zap.Error(err))
	}
	if err := h.Metrics.SetGauge(metrics.MemoryUsage, resp.MemoryUsage); err != nil {
		logger.Log.Warn("failed to set gauge", zap.String("metric", metrics.MemoryUsage), zap.Error(err))
	}
	h.countRequest(r.Method, "/status")

	writeJSON(w, resp)
}

// HandleMetrics - обработчик экспозиции метрик для Prometheus
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler(h.Metrics).ServeHTTP(w, r)
}

func (h *Handler) countRequest(method, endpoint string) {
	if err := h.Metrics.Increment(metrics.RequestsTotal, metrics.RequestLabels(method, endpoint)); err != nil {
		logger.Log.Warn("failed to count request",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
	}
}

// uniform возвращает случайное число из [lo, hi], округленное до сотых
func (h *Handler) uniform(lo, hi float64) float64 {
	v := lo + (hi-lo)*h.Rand()
	return math.Round(v*100) / 100
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}
