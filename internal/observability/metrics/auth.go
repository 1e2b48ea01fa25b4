package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	TechnicalTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "technical_tokens_issued_total",
			Help: "Total number of technical tokens issued at registration",
		},
	)

	TokenAuthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_auth_total",
			Help: "Total number of time-windowed authentication checks by result",
		},
		[]string{"result"},
	)

	// Offset label is the clock-skew offset (seconds) that produced the
	// matching proof; "0" is the exact-timestamp check.
	TokenAuthMatchedOffset = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_auth_matched_offset_total",
			Help: "Accepted authentications by matched timestamp offset",
		},
		[]string{"offset"},
	)
)
