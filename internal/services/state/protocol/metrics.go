package protocol

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the requests counter.
const (
	outcomeOK       = "ok"
	outcomeOutdated = "outdated"
	outcomeJoin     = "join_error"
	outcomeInvalid  = "invalid_argument"
	outcomeInternal = "internal_error"
)

// Notification kinds.
const (
	kindPush      = "push"
	kindBroadcast = "broadcast"
)

type handlerMetrics struct {
	requests      *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func newHandlerMetrics() handlerMetrics {
	return handlerMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sharedstate",
			Subsystem: "protocol",
			Name:      "requests_total",
			Help:      "State protocol requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sharedstate",
			Subsystem: "protocol",
			Name:      "notifications_total",
			Help:      "Notifications delivered to watchers by kind.",
		}, []string{"kind"}),
	}
}

func newWatchersGauge() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sharedstate",
		Subsystem: "protocol",
		Name:      "watchers",
		Help:      "Watchers currently joined to a room.",
	})
}

// collectorSource is implemented by Groups that export their own metrics.
type collectorSource interface {
	Collectors() []prometheus.Collector
}
