// Package metrics exposes Prometheus metrics about declaration and
// association runs.
//
// The CLI runs once and exits, so metrics are written to a node_exporter
// textfile instead of being served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry and the collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	declarationsTotal   *prometheus.CounterVec
	phaseDuration       *prometheus.HistogramVec
	templateResources   *prometheus.GaugeVec
	associationsTotal   *prometheus.CounterVec
	associationDuration prometheus.Histogram
}

// NewRecorder creates a recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		declarationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ecsdisco",
				Subsystem: "topology",
				Name:      "declarations_total",
				Help:      "Total number of declarations added to the graph by kind",
			},
			[]string{"stack", "kind"},
		),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ecsdisco",
				Subsystem: "topology",
				Name:      "phase_duration_seconds",
				Help:      "Duration of declaration phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us to ~1.6s
			},
			[]string{"stack", "phase"},
		),

		templateResources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ecsdisco",
				Subsystem: "synth",
				Name:      "template_resources",
				Help:      "Number of resources in the synthesized template by CloudFormation type",
			},
			[]string{"stack", "type"},
		),

		associationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ecsdisco",
				Subsystem: "association",
				Name:      "runs_total",
				Help:      "Total number of out-of-band zone associations by result",
			},
			[]string{"result"},
		),

		associationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "ecsdisco",
				Subsystem: "association",
				Name:      "duration_seconds",
				Help:      "Duration of out-of-band zone associations in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1s to ~2min
			},
		),
	}

	r.registry.MustRegister(
		r.declarationsTotal,
		r.phaseDuration,
		r.templateResources,
		r.associationsTotal,
		r.associationDuration,
	)
	return r
}

// RecordDeclaration counts one declaration of kind.
func (r *Recorder) RecordDeclaration(stack, kind string) {
	r.declarationsTotal.WithLabelValues(stack, kind).Inc()
}

// RecordPhase records the duration of a declaration phase.
func (r *Recorder) RecordPhase(stack, phase string, d time.Duration) {
	r.phaseDuration.WithLabelValues(stack, phase).Observe(d.Seconds())
}

// RecordTemplate records resource counts of a synthesized template.
func (r *Recorder) RecordTemplate(stack string, counts map[string]int) {
	for typ, n := range counts {
		r.templateResources.WithLabelValues(stack, typ).Set(float64(n))
	}
}

// RecordAssociation records the result and duration of an association run.
func (r *Recorder) RecordAssociation(result string, d time.Duration) {
	r.associationsTotal.WithLabelValues(result).Inc()
	r.associationDuration.Observe(d.Seconds())
}

// Gatherer exposes the registry for tests and exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
