package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Empty(t, r.counters)
	assert.Empty(t, r.gauges)

	out, err := r.Render()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRegistry_Increment(t *testing.T) {
	r := NewRegistry()
	labels := prometheus.Labels{"method": "GET", "endpoint": "/"}

	require.NoError(t, r.Increment("test_requests_total", labels))
	require.NoError(t, r.Increment("test_requests_total", labels))

	value, err := r.CounterValue("test_requests_total", labels)
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)

	// Другая комбинация меток - отдельная серия
	other := prometheus.Labels{"method": "GET", "endpoint": "/health"}
	require.NoError(t, r.Increment("test_requests_total", other))

	value, err = r.CounterValue("test_requests_total", other)
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)

	value, err = r.CounterValue("test_requests_total", labels)
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)
}

func TestRegistry_IncrementLabelMismatch(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Increment("test_total", prometheus.Labels{"method": "GET"}))
	err := r.Increment("test_total", prometheus.Labels{"path": "/"})
	assert.Error(t, err)
}

func TestRegistry_IncrementWithoutLabels(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Increment("plain_total", nil))

	value, err := r.CounterValue("plain_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)
}

func TestRegistry_SetGauge(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.SetGauge("test_gauge", 0.5))
	require.NoError(t, r.SetGauge("test_gauge", -12.25))

	value, err := r.GaugeValue("test_gauge")
	require.NoError(t, err)
	assert.Equal(t, -12.25, value)
}

func TestRegistry_NameCollision(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.SetGauge("shared", 1))
	assert.Error(t, r.Increment("shared", nil))
}

func TestRegistry_ValueNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.GaugeValue("missing")
	assert.ErrorIs(t, err, ErrMetricNotFound)

	_, err = r.CounterValue("missing", prometheus.Labels{"a": "b"})
	assert.ErrorIs(t, err, ErrMetricNotFound)
}

func TestRegistry_ValueWrongType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetGauge("g", 1))
	require.NoError(t, r.Increment("c", nil))

	_, err := r.CounterValue("g", nil)
	assert.Error(t, err)

	_, err = r.GaugeValue("c")
	assert.Error(t, err)
}

func TestRegistry_Render(t *testing.T) {
	r := NewRegistry()
	r.Describe("demo_total", "Demo counter")
	r.Describe("demo_gauge", "Demo gauge")

	require.NoError(t, r.Increment("demo_total", prometheus.Labels{"method": "GET", "endpoint": "/"}))
	require.NoError(t, r.SetGauge("demo_gauge", 0.42))

	out, err := r.Render()
	require.NoError(t, err)

	expected := `# HELP demo_gauge Demo gauge
# TYPE demo_gauge gauge
demo_gauge 0.42
# HELP demo_total Demo counter
# TYPE demo_total counter
demo_total{endpoint="/",method="GET"} 1
`
	assert.Equal(t, expected, string(out))

	// Повторный вызов строит вывод заново
	require.NoError(t, r.Increment("demo_total", prometheus.Labels{"method": "GET", "endpoint": "/"}))
	out, err = r.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), `demo_total{endpoint="/",method="GET"} 2`)
}

func TestRegistry_RenderDeterministic(t *testing.T) {
	r := NewRegistry()
	for _, ep := range []string{"/status", "/", "/health"} {
		require.NoError(t, r.Increment("demo_total", prometheus.Labels{"endpoint": ep}))
	}

	first, err := r.Render()
	require.NoError(t, err)
	second, err := r.Render()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRegistry_DefaultHelp(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetGauge("undocumented", 1))

	out, err := r.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), "# HELP undocumented undocumented\n")
}

func TestRegistry_ConcurrentIncrement(t *testing.T) {
	r := NewRegistry()
	labels := prometheus.Labels{"endpoint": "/"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, r.Increment("concurrent_total", labels))
			}
		}()
	}
	wg.Wait()

	value, err := r.CounterValue("concurrent_total", labels)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, value)
}

func TestNewAppRegistry(t *testing.T) {
	r := NewAppRegistry(false)

	require.NoError(t, r.Increment(RequestsTotal, RequestLabels("GET", "/")))

	expected := `
# HELP app_cpu_usage Simulated CPU usage
# TYPE app_cpu_usage gauge
app_cpu_usage 0
# HELP app_memory_usage Simulated Memory usage
# TYPE app_memory_usage gauge
app_memory_usage 0
# HELP app_requests_total Total HTTP requests
# TYPE app_requests_total counter
app_requests_total{endpoint="/",method="GET"} 1
`
	err := testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected),
		RequestsTotal, CPUUsage, MemoryUsage)
	assert.NoError(t, err)
}

func TestNewAppRegistry_Runtime(t *testing.T) {
	r := NewAppRegistry(true)

	out, err := r.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), "go_goroutines")
}

func BenchmarkRegistry_Increment(b *testing.B) {
	r := NewAppRegistry(false)
	labels := RequestLabels("GET", "/")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Increment(RequestsTotal, labels)
	}
}

func BenchmarkRegistry_Render(b *testing.B) {
	r := NewAppRegistry(false)
	_ = r.Increment(RequestsTotal, RequestLabels("GET", "/"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Render()
	}
}
