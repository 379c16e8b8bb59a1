// Package metrics exports callback traffic as prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunbind/sunbind/types"
)

// Observer records hook traffic in the package collectors. The zero value is
// ready to use.
type Observer struct{}

func (Observer) HookInvoked(slot string, status int, elapsed time.Duration) {
	totalHookCalls.WithLabelValues(slot, types.StatusName(status)).Inc()
	hookLatency.WithLabelValues(slot).Observe(elapsed.Seconds())
}

func (Observer) HookFailed(slot, kind string) {
	totalHookFailures.WithLabelValues(slot, kind).Inc()
}

func (Observer) TableAllocated(kind string) {
	totalTablesAllocated.WithLabelValues(kind).Inc()
	liveTables.WithLabelValues(kind).Inc()
}

func (Observer) TableReleased(kind string) {
	totalTablesReleased.WithLabelValues(kind).Inc()
	liveTables.WithLabelValues(kind).Dec()
}

// NewPromHttpHandler returns the /metrics handler.
func NewPromHttpHandler() http.Handler { return promhttp.Handler() }
