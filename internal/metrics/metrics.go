package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sandevgo/intake/internal/core"
)

const namespace = "intake"

// Recorder exports dialogue telemetry as Prometheus series.
type Recorder struct {
	turns            *prometheus.CounterVec
	turnDuration     *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	externalFailures *prometheus.CounterVec
	inquiriesSaved   prometheus.Counter
}

// New registers the series on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		turns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Total number of handled turns by response branch and intent",
			},
			[]string{"branch", "intent"},
		),
		turnDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "turn_duration_seconds",
				Help:      "Duration of turn handling in seconds",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30},
			},
			[]string{"branch"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Response cache lookups by result",
			},
			[]string{"hit"},
		),
		externalFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_failures_total",
				Help:      "Failures of external collaborators",
			},
			[]string{"component"},
		),
		inquiriesSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inquiries_saved_total",
				Help:      "Total number of inquiries persisted",
			},
		),
	}
}

func (r *Recorder) Turn(branch string, intent core.IntentCategory, d time.Duration) {
	r.turns.WithLabelValues(branch, string(intent)).Inc()
	r.turnDuration.WithLabelValues(branch).Observe(d.Seconds())
}

func (r *Recorder) CacheLookup(hit bool) {
	r.cacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

func (r *Recorder) ExternalFailure(component string) {
	r.externalFailures.WithLabelValues(component).Inc()
}

func (r *Recorder) InquirySaved() {
	r.inquiriesSaved.Inc()
}

// SessionGauge exposes the number of live sessions, read lazily from fn.
func SessionGauge(reg prometheus.Registerer, fn func() int) {
	promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live conversation sessions",
		},
		func() float64 { return float64(fn()) },
	)
}
