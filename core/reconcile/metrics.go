package reconcile

import "github.com/prometheus/client_golang/prometheus"

// Names
const (
	FlushCounter      = "listing_manager_flush_batches_total"
	DroppedCounter    = "listing_manager_dropped_listings_total"
	QueueDepthGauge   = "listing_manager_queue_depth"
	TriggerTicksTotal = "listing_manager_trigger_ticks_total"
)

// Labels
const (
	OutcomeLabel = "outcome"
	KindLabel    = "kind"
	ReasonLabel  = "reason"
	TriggerLabel = "trigger"
)

// Label Values
const (
	SuccessOutcome = "success"
	FailureOutcome = "failure"
	SkippedOutcome = "skipped"

	KindCreate = "create"
	KindDelete = "delete"

	ReasonInvalid  = "invalid"
	ReasonEncoding = "encoding"
)

// Metrics holds the collectors updated by the engine.
type Metrics struct {
	Flushes    *prometheus.CounterVec
	Dropped    *prometheus.CounterVec
	QueueDepth *prometheus.GaugeVec
	Ticks      *prometheus.CounterVec
}

// NewMetrics creates the engine collectors and registers them with reg. A nil
// registerer leaves them unregistered, which is what tests usually want.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FlushCounter,
			Help: "Counter for the number of dispatched mutation batches and their outcome.",
		}, []string{KindLabel, OutcomeLabel}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DroppedCounter,
			Help: "Counter for listing requests dropped before reaching the queue.",
		}, []string{ReasonLabel}),
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: QueueDepthGauge,
			Help: "Number of mutations waiting in the queue.",
		}, []string{KindLabel}),
		Ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: TriggerTicksTotal,
			Help: "Counter for periodic trigger executions and their outcome.",
		}, []string{TriggerLabel, OutcomeLabel}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.Flushes, m.Dropped, m.QueueDepth, m.Ticks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// mustMetrics returns unregistered collectors. It cannot fail.
func mustMetrics() *Metrics {
	m, _ := NewMetrics(nil)
	return m
}
