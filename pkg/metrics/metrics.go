package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики жизненного цикла оборудования.
var (
	LifecycleTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_lifecycle_transitions_total",
		Help: "Total number of equipment lifecycle transitions by action and resulting status",
	}, []string{"action", "status"})

	LifecycleTransitionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_lifecycle_transition_failures_total",
		Help: "Total number of rejected lifecycle transitions by reason",
	}, []string{"reason"})

	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_exports_total",
		Help: "Total number of equipment xlsx exports",
	})

	StatsCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stats_cache_hits_total",
		Help: "Total number of workflow stats responses served from cache",
	})
)
