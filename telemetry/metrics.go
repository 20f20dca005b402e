// Package telemetry provides Prometheus metrics, correlation-id aware logging
// helpers and OpenTelemetry tracing setup.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// FetchesStarted/Failed/Succeeded count provider fetches by provider name.
	FetchesStarted   *prometheus.CounterVec
	FetchesFailed    *prometheus.CounterVec
	FetchesSucceeded *prometheus.CounterVec

	// FetchDuration observes wall time per provider fetch in seconds.
	FetchDuration prometheus.Observer

	// MessagesParsed / EmotesReplaced count parser activity.
	MessagesParsed prometheus.Counter
	EmotesReplaced prometheus.Counter

	// CacheSizeGauge tracks the number of codes in the global emote index.
	CacheSizeGauge prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		FetchesStarted = promauto.NewCounterVec(prometheus.CounterOpts{Name: "emote_fetches_started_total", Help: "Number of provider emote fetches started"}, []string{"provider"})
		FetchesFailed = promauto.NewCounterVec(prometheus.CounterOpts{Name: "emote_fetches_failed_total", Help: "Number of provider emote fetches that failed or found nothing"}, []string{"provider"})
		FetchesSucceeded = promauto.NewCounterVec(prometheus.CounterOpts{Name: "emote_fetches_succeeded_total", Help: "Number of provider emote fetches that cached at least one emote"}, []string{"provider"})
		FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "emote_fetch_duration_seconds", Help: "Provider fetch duration seconds", Buckets: prometheus.DefBuckets})
		MessagesParsed = promauto.NewCounter(prometheus.CounterOpts{Name: "emote_messages_parsed_total", Help: "Number of texts run through the parser"})
		EmotesReplaced = promauto.NewCounter(prometheus.CounterOpts{Name: "emote_replacements_total", Help: "Number of emote codes replaced by the parser"})
		CacheSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "emote_cache_size", Help: "Current number of codes in the global emote index"})
	})
}

// Inc increments c (nil-safe, for callers that never ran Init).
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// IncProvider increments vec for the given provider label (nil-safe).
func IncProvider(vec *prometheus.CounterVec, provider string) {
	if vec != nil {
		vec.WithLabelValues(provider).Inc()
	}
}

// SetGauge sets g to v (nil-safe).
func SetGauge(g prometheus.Gauge, v float64) {
	if g != nil {
		g.Set(v)
	}
}

// ObserveDuration runs fn and records its duration on obs (nil-safe).
func ObserveDuration(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// NewCorrelation returns a fresh correlation id.
func NewCorrelation() string { return uuid.NewString() }

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// EnsureCorrelation returns ctx with a correlation id, minting one if absent.
func EnsureCorrelation(ctx context.Context) context.Context {
	if GetCorrelation(ctx) != "" {
		return ctx
	}
	return WithCorrelation(ctx, NewCorrelation())
}

// GetCorrelation returns the correlation id or an empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with the corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
