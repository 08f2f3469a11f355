package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the personnel module.
// Tracks duty assignments, rejections, transaction retries and the read cache.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DutiesCreated        prometheus.Counter
	Retirements          prometheus.Counter
	DutyRejections       *prometheus.CounterVec
	TxRetries            prometheus.Counter
	CreateDutyDuration   prometheus.Histogram
	GetHistoryDuration   prometheus.Histogram
	HistoryCacheHits     prometheus.Counter
	HistoryCacheMisses   prometheus.Counter
	HistoryCacheErrors   prometheus.Counter
	EventPublishFailures prometheus.Counter
	PeopleCreated        prometheus.Counter
}

// New creates the personnel metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	return &Metrics{
		DutiesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_duties_created_total",
			Help: "Total number of duty assignments committed",
		}),
		Retirements: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_retirements_total",
			Help: "Total number of retirement duties committed",
		}),
		DutyRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "astrotrack_duty_rejections_total",
			Help: "Duty assignments rejected, by error code",
		}, []string{"reason"}),
		TxRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_tx_retries_total",
			Help: "Transactions retried after a concurrent-update conflict",
		}),
		CreateDutyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "astrotrack_create_duty_duration_seconds",
			Help:    "Duration of CreateDuty operations",
			Buckets: buckets,
		}),
		GetHistoryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "astrotrack_get_duty_history_duration_seconds",
			Help:    "Duration of GetDutyHistory operations",
			Buckets: buckets,
		}),
		HistoryCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_history_cache_hits_total",
			Help: "Duty history reads served from cache",
		}),
		HistoryCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_history_cache_misses_total",
			Help: "Duty history reads that fell through to the store",
		}),
		HistoryCacheErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_history_cache_errors_total",
			Help: "Duty history cache operations that failed",
		}),
		EventPublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_duty_event_publish_failures_total",
			Help: "Duty events that could not be published after commit",
		}),
		PeopleCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "astrotrack_people_created_total",
			Help: "Total number of people added to the repository",
		}),
	}
}

func (m *Metrics) IncrementDutiesCreated(retired bool) {
	if m == nil {
		return
	}
	m.DutiesCreated.Inc()
	if retired {
		m.Retirements.Inc()
	}
}

func (m *Metrics) IncrementDutyRejected(reason string) {
	if m == nil {
		return
	}
	m.DutyRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementTxRetries() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}

func (m *Metrics) IncrementPeopleCreated() {
	if m == nil {
		return
	}
	m.PeopleCreated.Inc()
}

// ObserveCreateDuty records the duration of a CreateDuty operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreateDuty(start time.Time) {
	if m == nil {
		return
	}
	m.CreateDutyDuration.Observe(time.Since(start).Seconds())
}

// ObserveGetHistory records the duration of a GetDutyHistory operation.
func (m *Metrics) ObserveGetHistory(start time.Time) {
	if m == nil {
		return
	}
	m.GetHistoryDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.HistoryCacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.HistoryCacheMisses.Inc()
}

func (m *Metrics) IncrementCacheError() {
	if m == nil {
		return
	}
	m.HistoryCacheErrors.Inc()
}

func (m *Metrics) IncrementEventPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}
