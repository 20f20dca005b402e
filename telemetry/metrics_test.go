package telemetry

import (
	"context"
	"testing"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	first := MessagesParsed
	Init()
	if MessagesParsed != first {
		t.Errorf("Init() re-registered metrics")
	}
	if FetchesStarted == nil || CacheSizeGauge == nil {
		t.Errorf("Init() left metrics nil")
	}
}

func TestNilSafeHelpers(t *testing.T) {
	// Must not panic before Init.
	Inc(nil)
	IncProvider(nil, "twitch")
	SetGauge(nil, 1)
	ObserveDuration(nil, func() {})
}

func TestCorrelation(t *testing.T) {
	ctx := context.Background()
	if GetCorrelation(ctx) != "" {
		t.Errorf("expected empty correlation on fresh context")
	}

	ctx = WithCorrelation(ctx, "abc")
	if GetCorrelation(ctx) != "abc" {
		t.Errorf("GetCorrelation = %q, want abc", GetCorrelation(ctx))
	}

	// EnsureCorrelation keeps an existing id and mints one when absent.
	if GetCorrelation(EnsureCorrelation(ctx)) != "abc" {
		t.Errorf("EnsureCorrelation replaced an existing id")
	}
	minted := GetCorrelation(EnsureCorrelation(context.Background()))
	if minted == "" {
		t.Errorf("EnsureCorrelation did not mint an id")
	}
}

func TestLoggerWithCorr(t *testing.T) {
	if LoggerWithCorr(context.Background()) == nil {
		t.Errorf("LoggerWithCorr should fall back to the default logger")
	}
	if LoggerWithCorr(WithCorrelation(context.Background(), "abc")) == nil {
		t.Errorf("LoggerWithCorr returned nil for correlated context")
	}
}
