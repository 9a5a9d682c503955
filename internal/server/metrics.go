package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qkdsim_simulations_total",
		Help: "Simulated key exchanges, by protocol and outcome.",
	}, []string{"protocol", "outcome"})

	simulationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qkdsim_simulation_duration_seconds",
		Help:    "Wall time per simulated exchange.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
	}, []string{"protocol"})
)

func observeSimulation(protocol string, secure bool, seconds float64) {
	outcome := "secure"
	if !secure {
		outcome = "compromised"
	}
	simulationsTotal.WithLabelValues(protocol, outcome).Inc()
	simulationDuration.WithLabelValues(protocol).Observe(seconds)
}
