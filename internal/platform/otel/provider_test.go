package otel

import (
	"context"
	"strings"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SHAREDSTATE_OTEL_ENDPOINT", "")
	t.Setenv("SHAREDSTATE_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SHAREDSTATE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SHAREDSTATE_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export actually happens.
	t.Setenv("SHAREDSTATE_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("SHAREDSTATE_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupRejectsBadSampleRatio(t *testing.T) {
	t.Setenv("SHAREDSTATE_OTEL_SAMPLE_RATIO", "half")

	_, err := Setup(context.Background(), "test-service")
	if err == nil || !strings.Contains(err.Error(), "otel settings") {
		t.Fatalf("expected settings error, got %v", err)
	}
}

func TestSamplerBounds(t *testing.T) {
	if got := sampler(1).Description(); got != "AlwaysOnSampler" {
		t.Fatalf("sampler(1) = %q, want AlwaysOnSampler", got)
	}
	if got := sampler(0).Description(); got != "AlwaysOffSampler" {
		t.Fatalf("sampler(0) = %q, want AlwaysOffSampler", got)
	}
	if got := sampler(0.5).Description(); !strings.HasPrefix(got, "ParentBased") {
		t.Fatalf("sampler(0.5) = %q, want ParentBased prefix", got)
	}
}
