package metrics

import "github.com/prometheus/client_golang/prometheus"

// Имена метрик сервиса
const (
	RequestsTotal = "app_requests_total"
	CPUUsage      = "app_cpu_usage"
	MemoryUsage   = "app_memory_usage"

	HostCPUUsage    = "app_host_cpu_usage"
	HostMemoryUsage = "app_host_memory_usage"
)

// NewAppRegistry создает реестр сервиса метрик с заранее объявленными
// счетчиком запросов и двумя симулированными gauge-метриками.
func NewAppRegistry(withRuntime bool) *Registry {
	r := NewRegistry()

	r.Describe(RequestsTotal, "Total HTTP requests")
	r.Describe(CPUUsage, "Simulated CPU usage")
	r.Describe(MemoryUsage, "Simulated Memory usage")
	r.Describe(HostCPUUsage, "Host CPU utilization ratio")
	r.Describe(HostMemoryUsage, "Host memory utilization ratio")

	// Имена меток фиксируются здесь, до первого запроса
	if _, err := r.counterVec(RequestsTotal, []string{"endpoint", "method"}); err != nil {
		panic(err)
	}
	for _, name := range []string{CPUUsage, MemoryUsage} {
		if _, err := r.gauge(name); err != nil {
			panic(err)
		}
	}

	if withRuntime {
		r.WithRuntimeCollectors()
	}
	return r
}

// RequestLabels возвращает метки серии app_requests_total.
func RequestLabels(method, endpoint string) prometheus.Labels {
	return prometheus.Labels{"method": method, "endpoint": endpoint}
}
