package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommend holds recommendation engine metrics.
type Recommend struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	coldStarts    prometheus.Counter
	buildDuration prometheus.Histogram
	snapshotSize  *prometheus.GaugeVec
}

// NewRecommend creates and registers the engine metrics.
func NewRecommend(reg prometheus.Registerer) (*Recommend, error) {
	m := &Recommend{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation latency in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"strategy"}),
		coldStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cold_start_fallbacks_total",
			Help:      "Collaborative requests served by random catalog sampling.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "snapshot_build_duration_seconds",
			Help:      "Time to build both similarity indexes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		snapshotSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "snapshot_entities",
			Help:      "Entities in the current snapshot.",
		}, []string{"kind"}), // restaurants / users / ratings
	}
	if err := registerOrReuse(reg, &m.requests); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.coldStarts); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.buildDuration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.snapshotSize); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveRequest records one recommendation call.
func (m *Recommend) ObserveRequest(strategy, outcome string, d time.Duration) {
	m.requests.WithLabelValues(strategy, outcome).Inc()
	m.duration.WithLabelValues(strategy).Observe(d.Seconds())
}

// ObserveColdStart records a cold-start fallback.
func (m *Recommend) ObserveColdStart() { m.coldStarts.Inc() }

// ObserveBuild records a snapshot build and its size.
func (m *Recommend) ObserveBuild(d time.Duration, restaurants, users, ratings int) {
	m.buildDuration.Observe(d.Seconds())
	m.snapshotSize.WithLabelValues("restaurants").Set(float64(restaurants))
	m.snapshotSize.WithLabelValues("users").Set(float64(users))
	m.snapshotSize.WithLabelValues("ratings").Set(float64(ratings))
}
