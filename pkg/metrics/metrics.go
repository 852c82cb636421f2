package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type contextKey int

// NewRelicContextKey is the context key holding the *newrelic.Application
// metrics are reported to. Without it, every function in this package is a
// no-op.
const NewRelicContextKey contextKey = iota

// NewContext returns a context that reports metrics to the provided application
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	return context.WithValue(ctx, NewRelicContextKey, app)
}

func applicationFromContext(ctx context.Context) *newrelic.Application {
	app, _ := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	return app
}

// RecordCount records a count metric
func RecordCount(ctx context.Context, metricName string, count uint64) {
	if nr := applicationFromContext(ctx); nr != nil {
		nr.RecordCustomMetric(metricName, float64(count))
	}
}

// RecordDuration records a duration metric
func RecordDuration(ctx context.Context, metricName string, duration time.Duration) {
	if nr := applicationFromContext(ctx); nr != nil {
		nr.RecordCustomMetric(metricName, float64(duration/time.Millisecond))
	}
}
