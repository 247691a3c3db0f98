package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gads_play"

var (
	// SyncRunsTotal conta as execuções diárias por estado final e tipo de falha
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Total de execuções diárias por estado final",
		},
		[]string{"state", "failure_kind"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "stage_duration_seconds",
			Help:      "Duração de cada estágio da execução diária",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	SourceFetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "source_fetch_attempts_total",
			Help:      "Tentativas de busca por fonte e resultado",
		},
		[]string{"source", "outcome"},
	)

	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "generation_attempts_total",
			Help:      "Tentativas de geração de recomendações por resultado",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

const OutcomeSuccess = "success"

func RecordRun(state, failureKind string) {
	SyncRunsTotal.WithLabelValues(state, failureKind).Inc()
}

func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordFetchAttempt registra uma tentativa de busca; outcome é "success" ou o tipo da falha
func RecordFetchAttempt(source, outcome string) {
	SourceFetchAttempts.WithLabelValues(source, outcome).Inc()
}

func RecordGenerationAttempt(outcome string) {
	GenerationAttempts.WithLabelValues(outcome).Inc()
}

func RecordHTTPRequest(method, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// Handler expõe as métricas no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
