package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	MintDivergenceTotal        = "mint_divergence_total"
	ChainCallFailure           = "chain_call_failure"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		// MintDivergenceTotal counts tickets minted on chain but not recorded
		// in the database. Every increment needs manual reconciliation.
		MintDivergenceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MintDivergenceTotal,
			Help: "Count of mints confirmed on chain but not recorded in database",
		}, []string{"event_id"}),
		ChainCallFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChainCallFailure,
			Help: "Count of all chain call failures",
		}, []string{"method"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
	}

	PromSummaries = map[string]*prometheus.SummaryVec{}
)
