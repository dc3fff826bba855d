// Package metrics exposes Prometheus collectors for battle activity
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "battle_arena"

// Opponent kinds for BattleStarted
const (
	OpponentAI    = "ai"
	OpponentHuman = "human"
)

// LockWaitBuckets covers a free lock (sub-millisecond) up to a caller giving up
var LockWaitBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5}

// BattleMetrics records battle lifecycle counters. A nil *BattleMetrics is a
// valid no-op recorder.
type BattleMetrics struct {
	BattlesStarted   *prometheus.CounterVec
	BattlesCompleted prometheus.Counter
	TurnsResolved    *prometheus.CounterVec
	ItemsUsed        *prometheus.CounterVec
	LockWait         prometheus.Histogram
}

// NewBattleMetrics registers the collectors on registerer.
// Passing nil uses the default registry.
func NewBattleMetrics(registerer prometheus.Registerer) *BattleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &BattleMetrics{
		BattlesStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "battle",
				Name:      "started_total",
				Help:      "Battles created, by opponent kind (ai/human)",
			},
			[]string{"opponent"},
		),
		BattlesCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "battle",
				Name:      "completed_total",
				Help:      "Battles that ended with a winner",
			},
		),
		TurnsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "battle",
				Name:      "turns_resolved_total",
				Help:      "Resolved actions by kind (attack/defend)",
			},
			[]string{"action"},
		),
		ItemsUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "battle",
				Name:      "items_used_total",
				Help:      "Consumed items by type",
			},
			[]string{"item"},
		),
		LockWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "battle",
				Name:      "lock_wait_seconds",
				Help:      "Time spent acquiring a battle's exclusive lock and loading it",
				Buckets:   LockWaitBuckets,
			},
		),
	}
}

func (m *BattleMetrics) BattleStarted(opponent string) {
	if m == nil {
		return
	}
	m.BattlesStarted.WithLabelValues(opponent).Inc()
}

func (m *BattleMetrics) BattleCompleted() {
	if m == nil {
		return
	}
	m.BattlesCompleted.Inc()
}

func (m *BattleMetrics) TurnResolved(action string) {
	if m == nil {
		return
	}
	m.TurnsResolved.WithLabelValues(action).Inc()
}

func (m *BattleMetrics) ItemUsed(item string) {
	if m == nil {
		return
	}
	m.ItemsUsed.WithLabelValues(item).Inc()
}

func (m *BattleMetrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.LockWait.Observe(d.Seconds())
}
