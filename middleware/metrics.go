package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/go-mediator/mediator"
)

const (
	metricsNamespace = "mediator"
	metricsSubsystem = "dispatch"
)

// DispatchMetricsCollector handles dispatch execution metrics
type DispatchMetricsCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector
func NewDispatchMetricsCollector() *DispatchMetricsCollector {
	return &DispatchMetricsCollector{
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "duration_seconds",
				Help:      "Dispatch execution duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"request", "status"},
		),
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "total",
				Help:      "Total number of dispatches by request type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers all dispatch metrics with the given registry
func (c *DispatchMetricsCollector) Register(registry prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{c.dispatchDuration, c.dispatchesTotal} {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordDispatch records execution metrics for one dispatch
func (c *DispatchMetricsCollector) RecordDispatch(requestName string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.dispatchDuration.WithLabelValues(requestName, status).Observe(duration)
	c.dispatchesTotal.WithLabelValues(requestName, status).Inc()
}

// Metrics creates middleware that records execution metrics for every dispatch
//
// Request names are extracted via reflection and simplified to remove package
// prefixes, so "*commands.CreateTaskCommand" is labeled "CreateTaskCommand".
// A nil collector disables recording.
func Metrics(collector *DispatchMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		requestName := RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordDispatch(requestName, time.Since(start).Seconds(), err == nil)
		return response, err
	}
}
