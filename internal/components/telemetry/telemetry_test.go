package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("vlr_scraper", rec)

	scoped.ReportWarning("mapper.match", 13)
	scoped.ReportBroken("scraper.team", "boom")
	scoped.ReportDebug("fetch", "https://www.vlr.gg/2")
	scoped.ReportCount("scraper.matches", 4)

	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "vlr_scraper: mapper.match", warnings[0].Id)
	require.Equal(t, []any{13}, warnings[0].Params)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "vlr_scraper: scraper.team", broken[0].Id)

	require.Equal(t, "vlr_scraper: fetch", rec.Reports("debug")[0].Id)
	require.Equal(t, []any{int64(4)}, rec.Reports("count")[0].Params)
}

func TestConfigEnabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Otlp: OtlpConfig{
		Traces: OtlpConnConfig{HttpEndpoint: "http://localhost:4318/v1/traces"},
	}}.Enabled())
}

func TestNestedScopes(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("fixtures", NewScopedAPI("vlr", rec))
	scoped.ReportWarning("get", "https://www.vlr.gg/team/3")

	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "vlr: fixtures: get", warnings[0].Id)
}

func TestSlogAPI(t *testing.T) {
	var out bytes.Buffer
	api := NewSlogAPIWithLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	api.ReportWarning("vlr: mapper.roster", "mismatched roster lists", 2)
	require.Contains(t, out.String(), `level=WARN msg="vlr: mapper.roster" p0="mismatched roster lists" p1=2`)

	out.Reset()
	api.ReportBroken("store: db.query", "upsertTeam")
	require.Contains(t, out.String(), `level=ERROR msg="store: db.query" kind=broken p0=upsertTeam`)

	out.Reset()
	api.ReportCount("vlr: scraper.matches", 4)
	require.Contains(t, out.String(), `count=4`)
}

func TestSetupFailureInstallsNothing(t *testing.T) {
	defer func(restore func(context.Context, OtlpConnConfig) (metric.Exporter, error)) {
		newMetricExporter = restore
	}(newMetricExporter)
	newMetricExporter = func(context.Context, OtlpConnConfig) (metric.Exporter, error) {
		return nil, errors.New("no exporter")
	}

	tel, err := Setup(context.Background(), "vlr-cli", Config{Otlp: OtlpConfig{
		Traces:  OtlpConnConfig{HttpEndpoint: "http://localhost:4318/v1/traces"},
		Metrics: OtlpConnConfig{HttpEndpoint: "http://localhost:4318/v1/metrics"},
	}})
	require.ErrorContains(t, err, "no exporter")
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	_, installed := otel.GetTracerProvider().(*trace.TracerProvider)
	require.False(t, installed)
}
