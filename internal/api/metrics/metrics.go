// Package metrics defines all custom Prometheus metrics for the vehicle
// inventory API. It is the single source of truth for metric names, labels,
// and help strings; metrics register themselves with the default registry
// via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vehicles"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Exchange-rate metrics ─────────────────────────────────────────────────────

// RateFetchesTotal counts quote fetches against the external providers.
// Labels:
//   - provider: provider name (e.g. "awesomeapi", "frankfurter")
//   - result: "success" or "error"
var RateFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_fetches_total",
		Help:      "Total number of exchange-rate fetches, by provider and result.",
	},
	[]string{"provider", "result"},
)

// RateCacheTotal counts rate-cache lookups.
// Label:
//   - result: "hit" or "miss"
var RateCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_cache_total",
		Help:      "Total number of exchange-rate cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// VehicleWritesTotal counts successful vehicle mutations.
// Label:
//   - operation: "create", "update", "patch", or "delete"
var VehicleWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of successful vehicle writes, by operation.",
	},
	[]string{"operation"},
)
