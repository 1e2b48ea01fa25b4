package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SieveRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sieve_runs_total",
			Help: "Total number of sieve computations by outcome",
		},
		[]string{"outcome"},
	)

	SieveRunDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sieve_run_duration_seconds",
			Help:    "Duration of sieve computations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	SievePrimesFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sieve_primes_found",
			Help:    "Number of primes produced per sieve run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
	)

	SieveSlotsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sieve_slots_in_use",
			Help: "Sieve worker slots currently occupied",
		},
	)

	HistoryRecordsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_records_appended_total",
			Help: "Total number of records appended to the sieve history",
		},
	)
)
