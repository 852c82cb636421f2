package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopWithoutApplication(t *testing.T) {
	ctx := context.Background()

	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})
	RecordCount(ctx, "count", 1)
	RecordDuration(ctx, "duration", time.Second)

	txnCtx, end := StartTransaction(ctx, "txn")
	assert.Equal(t, ctx, txnCtx)
	end()

	tracer := TraceMethodCall(ctx, "metrics", "TestNoopWithoutApplication")
	assert.Nil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.AddAttributes(map[string]interface{}{"key": "value"})
	tracer.OnError(errors.New("error"))
	tracer.End()
}

func TestDisabledApplication(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("metrics-test"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	ctx := NewContext(context.Background(), app)
	assert.Equal(t, app, applicationFromContext(ctx))

	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})
	RecordCount(ctx, "count", 1)
	RecordDuration(ctx, "duration", time.Second)

	txnCtx, end := StartTransaction(ctx, "txn")
	defer end()

	tracer := TraceMethodCall(txnCtx, "metrics", "TestDisabledApplication")
	tracer.AddAttribute("key", "value")
	tracer.OnError(errors.New("error"))
	tracer.End()
}
