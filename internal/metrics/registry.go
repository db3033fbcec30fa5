// Package metrics хранит счетчики и gauge-метрики процесса и отдает их
// в текстовом формате экспозиции Prometheus.
package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ContentType - тип содержимого текстового формата экспозиции 0.0.4.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// ErrMetricNotFound возвращается при чтении несуществующей серии.
var ErrMetricNotFound = errors.New("metric not found")

// Registry - реестр метрик одного процесса.
// Безопасен для конкурентного использования.
type Registry struct {
	mu       sync.Mutex
	reg      *prometheus.Registry
	help     map[string]string
	counters map[string]*prometheus.CounterVec
	gauges   map[string]prometheus.Gauge
}

// NewRegistry - конструктор для пустого Registry
func NewRegistry() *Registry {
	return &Registry{
		reg:      prometheus.NewRegistry(),
		help:     make(map[string]string),
		counters: make(map[string]*prometheus.CounterVec),
		gauges:   make(map[string]prometheus.Gauge),
	}
}

// Describe задает HELP-текст метрики. Действует только на метрики,
// которые еще не созданы.
func (r *Registry) Describe(name, help string) {
	r.mu.Lock()
	r.help[name] = help
	r.mu.Unlock()
}

// Increment увеличивает на 1 серию счетчика name с набором меток labels.
// Семейство и серия создаются при первом обращении; имена меток
// семейства фиксируются по первому вызову.
func (r *Registry) Increment(name string, labels prometheus.Labels) error {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)

	vec, err := r.counterVec(name, names)
	if err != nil {
		return err
	}

	c, err := vec.GetMetricWith(labels)
	if err != nil {
		return fmt.Errorf("counter %s: %w", name, err)
	}
	c.Inc()
	return nil
}

// SetGauge перезаписывает значение gauge-метрики name.
func (r *Registry) SetGauge(name string, value float64) error {
	g, err := r.gauge(name)
	if err != nil {
		return err
	}
	g.Set(value)
	return nil
}

// Render возвращает все серии реестра в текстовом формате Prometheus.
// Результат не кешируется и строится заново при каждом вызове.
func (r *Registry) Render() ([]byte, error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}

// CounterValue возвращает текущее значение серии счетчика.
func (r *Registry) CounterValue(name string, labels prometheus.Labels) (float64, error) {
	m, err := r.lookup(name, labels)
	if err != nil {
		return 0, err
	}
	if m.GetCounter() == nil {
		return 0, fmt.Errorf("%s is not a counter", name)
	}
	return m.GetCounter().GetValue(), nil
}

// GaugeValue возвращает последнее записанное значение gauge-метрики.
func (r *Registry) GaugeValue(name string) (float64, error) {
	m, err := r.lookup(name, nil)
	if err != nil {
		return 0, err
	}
	if m.GetGauge() == nil {
		return 0, fmt.Errorf("%s is not a gauge", name)
	}
	return m.GetGauge().GetValue(), nil
}

// MustRegister регистрирует сторонние коллекторы в реестре.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.reg.MustRegister(cs...)
}

// Registerer используется для инструментирования обработчиков promhttp.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// Gatherer возвращает источник семейств метрик.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WithRuntimeCollectors добавляет метрики Go-рантайма и процесса.
func (r *Registry) WithRuntimeCollectors() *Registry {
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) counterVec(name string, labelNames []string) (*prometheus.CounterVec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vec, ok := r.counters[name]; ok {
		return vec, nil
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: r.helpFor(name),
	}, labelNames)
	if err := r.reg.Register(vec); err != nil {
		return nil, fmt.Errorf("register counter %s: %w", name, err)
	}
	r.counters[name] = vec
	return vec, nil
}

func (r *Registry) gauge(name string) (prometheus.Gauge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gauges[name]; ok {
		return g, nil
	}

	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: r.helpFor(name),
	})
	if err := r.reg.Register(g); err != nil {
		return nil, fmt.Errorf("register gauge %s: %w", name, err)
	}
	r.gauges[name] = g
	return g, nil
}

// helpFor вызывается под r.mu
func (r *Registry) helpFor(name string) string {
	if h, ok := r.help[name]; ok && h != "" {
		return h
	}
	return name
}

func (r *Registry) lookup(name string, labels prometheus.Labels) (*dto.Metric, error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m.GetLabel(), labels) {
				return m, nil
			}
		}
	}
	return nil, ErrMetricNotFound
}

func labelsMatch(pairs []*dto.LabelPair, labels prometheus.Labels) bool {
	if len(pairs) != len(labels) {
		return false
	}
	for _, p := range pairs {
		v, ok := labels[p.GetName()]
		if !ok || v != p.GetValue() {
			return false
		}
	}
	return true
}
