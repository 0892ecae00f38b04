package instrumentation

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestZeroValueMetricsIsNoop(t *testing.T) {
	ctx := context.Background()

	var m *Metrics
	m.RecordToolInvocation(ctx, "send_email", StatusSuccess, time.Millisecond)
	m.RecordGmailOperation(ctx, "send", StatusError, time.Millisecond)
	m.RecordOAuthAuth(ctx, StatusSuccess)

	zero := &Metrics{}
	zero.RecordToolInvocation(ctx, "send_email", StatusSuccess, time.Millisecond)
	zero.RecordGmailOperation(ctx, "send", StatusError, time.Millisecond)
	zero.RecordOAuthAuth(ctx, StatusSuccess)
}

func TestRecordToolInvocation(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(ctx) }()

	m, err := NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	m.RecordToolInvocation(ctx, "search_emails", StatusSuccess, 25*time.Millisecond)
	m.RecordToolInvocation(ctx, "search_emails", StatusError, 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var foundCounter, foundHistogram bool
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			switch metric.Name {
			case "mcp_tool_invocations_total":
				foundCounter = true
				sum, ok := metric.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatalf("unexpected data type %T", metric.Data)
				}
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				if total != 2 {
					t.Errorf("invocation total = %d, want 2", total)
				}
			case "mcp_tool_duration_seconds":
				foundHistogram = true
			}
		}
	}

	if !foundCounter {
		t.Error("mcp_tool_invocations_total not collected")
	}
	if !foundHistogram {
		t.Error("mcp_tool_duration_seconds not collected")
	}
}
