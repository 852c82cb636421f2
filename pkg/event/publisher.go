package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	event_store "github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/retry"
	"github.com/code-payments/code-vault/pkg/retry/backoff"
	striped "github.com/code-payments/code-vault/pkg/sync"
)

const backoffJitter = 0.25

// StorePublisher persists events to an event_store.Store from a set of
// background workers. Events of a single transaction are always handled by
// the same worker, in emission order.
type StorePublisher struct {
	log   *logrus.Entry
	conf  *conf
	store event_store.Store

	ctx      context.Context
	channels *striped.StripedChannel[[]*event_store.Record]
	workers  sync.WaitGroup

	closeMu sync.RWMutex
	closed  bool
}

// NewStorePublisher returns a publisher whose workers live until ctx is
// cancelled or Close is called.
func NewStorePublisher(ctx context.Context, store event_store.Store, configProvider ConfigProvider) *StorePublisher {
	conf := configProvider()

	p := &StorePublisher{
		log:   logrus.StandardLogger().WithField("type", "event/publisher"),
		conf:  conf,
		store: store,
		ctx:   ctx,
		channels: striped.NewStripedChannel[[]*event_store.Record](
			uint(conf.workerCount.Get(ctx)),
			uint(conf.bufferSize.Get(ctx)),
		),
	}

	for i, channel := range p.channels.GetChannels() {
		p.workers.Add(1)
		go p.worker(i, channel)
	}

	return p
}

// Publish implements Publisher.Publish
func (p *StorePublisher) Publish(ctx context.Context, txSignature []byte, events ...Emitted) {
	if len(events) == 0 {
		return
	}

	encodedSignature := base58.Encode(txSignature)
	log := p.log.WithFields(logrus.Fields{
		"method":    "Publish",
		"signature": encodedSignature,
	})

	now := time.Now()
	batch := make([]*event_store.Record, len(events))
	for i, emitted := range events {
		batch[i] = &event_store.Record{
			EventId:     uuid.NewString(),
			Transaction: encodedSignature,
			Program:     base58.Encode(emitted.Program),
			Name:        emitted.Event.Name(),
			Data:        emitted.Event.Marshal(),
			CreatedAt:   now,
		}
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		log.Warn("publisher is closed, dropping events")
		recordEventsDroppedEvent(ctx, len(batch), "closed")
		return
	}

	if !p.channels.Send(txSignature, batch) {
		log.Warn("event buffer is full, dropping events")
		recordEventsDroppedEvent(ctx, len(batch), "buffer_full")
	}
}

// Close stops accepting events, and blocks until every buffered event has
// been handled.
func (p *StorePublisher) Close() {
	p.closeMu.Lock()
	if !p.closed {
		p.closed = true
		p.channels.Close()
	}
	p.closeMu.Unlock()

	p.workers.Wait()
}

func (p *StorePublisher) worker(id int, channel <-chan []*event_store.Record) {
	defer p.workers.Done()

	log := p.log.WithField("worker", id)

	for batch := range channel {
		for _, record := range batch {
			if err := p.save(record); err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"event_id":  record.EventId,
					"signature": record.Transaction,
					"name":      record.Name,
				}).Warn("failure saving event, dropping it")
				recordEventsDroppedEvent(p.ctx, 1, "save_failure")
				continue
			}

			recordEventPublishedEvent(p.ctx, record)
		}
	}
}

func (p *StorePublisher) save(record *event_store.Record) error {
	_, err := retry.Retry(
		func() error {
			err := p.store.Save(p.ctx, record.Clone())
			if errors.Is(err, event_store.ErrEventExists) {
				return nil
			}
			return err
		},
		retry.Limit(uint(p.conf.maxAttempts.Get(p.ctx))),
		retry.Context(p.ctx),
		retry.BackoffWithJitter(
			backoff.BinaryExponential(p.conf.backoff.Get(p.ctx)),
			p.conf.maxBackoff.Get(p.ctx),
			backoffJitter,
		),
	)
	return err
}
