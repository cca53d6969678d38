package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	_, span := Tracer().Start(context.Background(), "day")
	if span.SpanContext().IsValid() {
		t.Fatalf("noop provider produced a valid span context")
	}
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitTracingStdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		Enabled:     true,
		ServiceName: "station-test",
		Exporter:    "stdout",
		SampleRatio: 1,
		Writer:      &buf,
	}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	_, span := Tracer().Start(context.Background(), "station.day")
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, nil)

	if !strings.Contains(buf.String(), "station.day") {
		t.Fatalf("exporter output missing span:\n%s", buf.String())
	}
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported tracing exporter") {
		t.Fatalf("InitTracing error = %v, want unsupported exporter", err)
	}
}

func TestTracerRecordsSpansWithInMemoryExporter(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	_, span := Tracer().Start(context.Background(), "station.repair")
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 || spans[0].Name != "station.repair" {
		t.Fatalf("spans = %v, want one station.repair", spans)
	}
	if spans[0].InstrumentationScope.Name != TracerName {
		t.Fatalf("scope = %q, want %q", spans[0].InstrumentationScope.Name, TracerName)
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("STATION_TRACING_ENABLED", "true")
	t.Setenv("STATION_TRACING_EXPORTER", "OTLP")
	t.Setenv("STATION_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("STATION_TRACING_SAMPLE_RATIO", "2.5")

	cfg, err := TracingConfigFromEnv()
	if err != nil {
		t.Fatalf("TracingConfigFromEnv: %v", err)
	}
	if !cfg.Enabled || cfg.Exporter != "otlp" || cfg.Endpoint != "collector:4317" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("SampleRatio = %v, want fallback 1", cfg.SampleRatio)
	}
}
