// Package metrics records pipeline stage activity for Prometheus.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Annallisboa/QA-app/internal/pipeline"
)

// Metrics holds the collectors for pipeline runs.
type Metrics struct {
	StageCalls    *prometheus.CounterVec
	StageFailures *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	Questions     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StageCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qa_app_stage_calls_total",
				Help: "Total number of pipeline stage executions",
			},
			[]string{"stage"},
		),
		StageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qa_app_stage_failures_total",
				Help: "Total number of failed pipeline stage executions",
			},
			[]string{"stage"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qa_app_stage_duration_seconds",
				Help:    "Duration of pipeline stage executions",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"stage"},
		),
		Questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qa_app_questions_total",
				Help: "Questions answered, by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.StageCalls, m.StageFailures, m.StageDuration, m.Questions)
	return m
}

// Hooks returns pipeline hooks that record stage metrics.
func (m *Metrics) Hooks() pipeline.Hooks {
	return pipeline.Hooks{
		OnStageStart: func(_ context.Context, e pipeline.StageEvent) {
			m.StageCalls.WithLabelValues(e.Stage).Inc()
		},
		OnStageDone: func(_ context.Context, e pipeline.StageEvent) {
			m.StageDuration.WithLabelValues(e.Stage).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.StageFailures.WithLabelValues(e.Stage).Inc()
			}
		},
	}
}

// Outcome labels for Questions.
const (
	OutcomeAnswered = "answered"
	OutcomeNoMap    = "answered_without_map"
	OutcomeFailed   = "failed"
)
