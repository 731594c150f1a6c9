// Package metrics exposes prometheus collectors for burden recompute
// activity. All methods are safe on a nil *Collectors so callers can
// treat metrics as optional.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors holds the prometheus instruments for this module
type Collectors struct {
	recomputes    prometheus.Counter
	writesSkipped prometheus.Counter
	burden        *prometheus.GaugeVec
}

// Config contains configuration for the metrics collectors.
type Config struct {
	// Registry defaults to prometheus.DefaultRegisterer when nil
	Registry prometheus.Registerer
}

// New creates and registers the collectors
func New(cfg *Config) *Collectors {
	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	if cfg != nil && cfg.Registry != nil {
		reg = cfg.Registry
	}

	return &Collectors{
		recomputes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "attunement_recomputes_total",
			Help: "Number of burden recomputations performed.",
		}),
		writesSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "attunement_recompute_writes_skipped_total",
			Help: "Number of recomputations that skipped the persistence write because the burden was unchanged.",
		}),
		burden: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "attunement_burden",
			Help: "Last recomputed attunement burden per character.",
		}, []string{"actor_id"}),
	}
}

// RecomputeObserved records the outcome of one burden recomputation
func (c *Collectors) RecomputeObserved(actorID string, burden int, changed bool) {
	if c == nil {
		return
	}
	c.recomputes.Inc()
	if !changed {
		c.writesSkipped.Inc()
	}
	c.burden.WithLabelValues(actorID).Set(float64(burden))
}
