package telemetry

import (
	"context"
	"testing"
)

func TestSetupNoop(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{"no endpoint", "", ""},
		{"explicitly disabled", "http://localhost:4318", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TANGO_OTEL_ENDPOINT", tt.endpoint)
			t.Setenv("TANGO_OTEL_ENABLED", tt.enabled)

			shutdown, err := Setup(context.Background(), "tango-test")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error: %v", err)
			}
		})
	}
}

func TestTracerWithoutProvider(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "op")
	defer span.End()
	if span == nil {
		t.Fatal("expected a span from the default provider")
	}
}
