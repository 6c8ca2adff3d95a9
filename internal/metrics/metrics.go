package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Tick loop metrics

	MessagesSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connor",
		Name:      "messages_sent_total",
		Help:      "Total messages delivered to the chat, by kind and outcome.",
	}, []string{"kind", "outcome"})

	TickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "connor",
		Name:      "tick_duration_seconds",
		Help:      "Time taken for one tick of the scheduling loop.",
		Buckets:   prometheus.DefBuckets,
	})

	ScheduleCacheRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connor",
		Name:      "schedule_cache_refreshes_total",
		Help:      "Schedule cache refresh attempts, by outcome.",
	}, []string{"outcome"})

	ScheduleCacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "connor",
		Name:      "schedule_cache_entries",
		Help:      "Number of enabled schedule entries currently cached.",
	})

	// Drainer metrics

	CommandsExecutedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connor",
		Name:      "commands_executed_total",
		Help:      "Total remote commands drained, by command and outcome.",
	}, []string{"command", "outcome"})

	DrainDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "connor",
		Name:      "drain_duration_seconds",
		Help:      "Time taken for one command-queue drain cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "connor",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connor",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		MessagesSentTotal,
		TickDuration,
		ScheduleCacheRefreshesTotal,
		ScheduleCacheEntries,
		CommandsExecutedTotal,
		DrainDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
