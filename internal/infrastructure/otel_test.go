package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"jobpulse/internal/config"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestBusinessMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	RecordDatasetLoad(ctx, metrics, "csv", 98, 2, 10*time.Millisecond)
	RecordQuery(ctx, metrics, "data", 30)
	RecordAggregation(ctx, metrics, "box-plot", time.Millisecond, nil)
	RecordAggregation(ctx, metrics, "geo", time.Millisecond, errors.New("boom"))
	RecordExport(ctx, metrics, "csv", 30)

	got := collect(t, reader)
	assert.Equal(t, int64(98), sumOf(t, got["dataset_rows_loaded_total"]))
	assert.Equal(t, int64(2), sumOf(t, got["dataset_rows_skipped_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["aggregation_errors_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["exports_total"]))
	assert.Equal(t, int64(30), sumOf(t, got["export_rows_total"]))
	assert.Contains(t, got, "aggregation_duration_seconds")
	assert.Contains(t, got, "query_result_size")
}

func TestRecordHelpersAcceptNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordDatasetLoad(ctx, nil, "csv", 1, 0, time.Second)
		RecordQuery(ctx, nil, "data", 1)
		RecordAggregation(ctx, nil, "geo", time.Second, nil)
		RecordExport(ctx, nil, "xlsx", 1)
	})
}

func TestNoopProviders(t *testing.T) {
	p := NoopProviders(nil)
	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Meter)
	assert.Nil(t, p.PrometheusHTTP)

	metrics, err := CreateBusinessMetrics(p.Meter)
	require.NoError(t, err)
	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitializeOTelServesPrometheus(t *testing.T) {
	cfg := OTelConfigFromTelemetry(config.TelemetryConfig{
		ServiceName:   "jobpulse-test",
		TraceExporter: "none",
		Metrics:       true,
	})

	p, err := InitializeOTel(cfg, DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	require.NotNil(t, p.PrometheusHTTP)

	metrics, err := CreateBusinessMetrics(p.Meter)
	require.NoError(t, err)
	RecordExport(context.Background(), metrics, "csv", 5)

	rec := httptest.NewRecorder()
	p.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exports_total")
}

func TestInitializeOTelRejectsUnknownExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{ServiceName: "x", TraceExporter: "zipkin"}, DiscardLogger())
	assert.Error(t, err)
}
