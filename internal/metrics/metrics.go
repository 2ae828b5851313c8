package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DonationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodshare_donations_created_total",
		Help: "Total number of donations successfully listed.",
	})

	ClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodshare_claims_total",
		Help: "Claim attempts by outcome (won, conflict, not_found, error).",
	},
		[]string{"result"},
	)

	DonationsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodshare_donations_expired_total",
		Help: "Total number of donations moved to expired by the sweeper.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodshare_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	EventsBroadcastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodshare_events_broadcast_total",
		Help: "Lifecycle events fanned out to observers, by event name.",
	},
		[]string{"event"},
	)

	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodshare_events_dropped_total",
		Help: "Event frames dropped because an observer's buffer was full.",
	})

	ConnectedObservers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foodshare_connected_observers",
		Help: "Current number of connected WebSocket observers.",
	})

	OutboxTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodshare_outbox_tasks_total",
		Help: "Outbox tasks handed to the producer, by outcome (done, failed).",
	},
		[]string{"result"},
	)

	MarketCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foodshare_market_cache_items",
		Help: "Current number of crop prices held in the market cache.",
	})
)
