// Package metrics exposes prometheus instrumentation for the simulation
// service: run counts by variant and outcome, tick and waste distributions.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flashbots/otpring/sim"
)

var (
	registry = prometheus.NewRegistry()

	// RunsStarted counts simulation runs by protocol variant.
	RunsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otpring_runs_started_total",
		Help: "Number of simulation runs started",
	}, []string{"variant"})

	// RunsFinished counts finished runs by variant and terminal outcome.
	RunsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otpring_runs_finished_total",
		Help: "Number of simulation runs finished",
	}, []string{"variant", "outcome"})

	// RunTicks observes how many ticks a run took to terminate.
	RunTicks = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "otpring_run_ticks",
		Help:    "Ticks until a run terminated",
		Buckets: prometheus.ExponentialBuckets(16, 2, 14),
	}, []string{"variant"})

	// RunWaste observes the number of pads wasted per run.
	RunWaste = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "otpring_run_waste_pads",
		Help:    "Pads wasted (drifted past unburned) per run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 16),
	}, []string{"variant"})

	bindOnce sync.Once
)

func bind() {
	bindOnce.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			RunsStarted,
			RunsFinished,
			RunTicks,
			RunWaste,
		)
	})
}

// Handler returns the http handler exposing the simulation service's
// collectors, typically mounted at /metrics.
func Handler() http.Handler {
	bind()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// ObserveRun records the terminal state of a finished run.
func ObserveRun(variant string, result *sim.Result) {
	RunsFinished.WithLabelValues(variant, result.Outcome.String()).Inc()
	RunTicks.WithLabelValues(variant).Observe(float64(result.Ticks))
	RunWaste.WithLabelValues(variant).Observe(float64(result.Waste))
}
