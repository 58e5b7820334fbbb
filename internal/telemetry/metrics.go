package telemetry

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds operational metrics using OTEL semantic conventions. A nil
// *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	httpRequests      metric.Int64Counter
	providerCalls     metric.Int64Counter
	providerDuration  metric.Float64Histogram
	instancesObserved metric.Int64Gauge
}

// NewMetrics creates the stratus instrument set on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("stratus")

	httpRequests, err := meter.Int64Counter(
		"stratus.http.requests",
		metric.WithDescription("Number of HTTP requests handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	providerCalls, err := meter.Int64Counter(
		"stratus.provider.calls",
		metric.WithDescription("Number of cloud provider API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	providerDuration, err := meter.Float64Histogram(
		"stratus.provider.call.duration",
		metric.WithDescription("Duration of cloud provider API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	instancesObserved, err := meter.Int64Gauge(
		"stratus.instances.observed",
		metric.WithDescription("Number of instances observed by the last summary"),
		metric.WithUnit("{instance}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		httpRequests:      httpRequests,
		providerCalls:     providerCalls,
		providerDuration:  providerDuration,
		instancesObserved: instancesObserved,
	}, nil
}

// RecordHTTPRequest records one handled request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
			attribute.String("http.response.status_code", strconv.Itoa(status)),
		),
	)
}

// RecordProviderCall records one outbound provider call and its duration.
func (m *Metrics) RecordProviderCall(ctx context.Context, op, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status", status),
	)
	m.providerCalls.Add(ctx, 1, attrs)
	m.providerDuration.Record(ctx, durationSeconds, attrs)
}

// RecordInstancesObserved records the fleet size seen by a summary.
func (m *Metrics) RecordInstancesObserved(ctx context.Context, count int64) {
	if m == nil {
		return
	}
	m.instancesObserved.Record(ctx, count)
}
