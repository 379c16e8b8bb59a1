package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	hookLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sunbind_hook_duration_seconds",
			Help:    "time spent in host callables.",
			Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1},
		},
		[]string{"slot"},
	)

	totalHookCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sunbind_hook_calls_total", Help: "hook invocations by slot and status"},
		[]string{"slot", "status"},
	)

	totalHookFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sunbind_hook_failures_total", Help: "interop failures by slot and kind"},
		[]string{"slot", "kind"},
	)

	totalTablesAllocated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sunbind_tables_allocated_total", Help: "callback tables allocated"},
		[]string{"kind"},
	)

	totalTablesReleased = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sunbind_tables_released_total", Help: "callback tables released by the engine"},
		[]string{"kind"},
	)

	liveTables = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "sunbind_tables_live", Help: "callback tables not yet released"},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		hookLatency,
		totalHookCalls,
		totalHookFailures,
		totalTablesAllocated,
		totalTablesReleased,
		liveTables,
	)
}
