package event

import (
	"context"

	event_store "github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/metrics"
)

const (
	eventPublishedEventName = "ProgramEventPublished"
	eventsDroppedEventName  = "ProgramEventsDropped"
)

func recordEventPublishedEvent(ctx context.Context, record *event_store.Record) {
	metrics.RecordEvent(ctx, eventPublishedEventName, map[string]interface{}{
		"program": record.Program,
		"name":    record.Name,
	})
}

func recordEventsDroppedEvent(ctx context.Context, count int, reason string) {
	metrics.RecordEvent(ctx, eventsDroppedEventName, map[string]interface{}{
		"count":  count,
		"reason": reason,
	})
}
