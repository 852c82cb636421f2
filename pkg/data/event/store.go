package event

import (
	"context"
	"errors"

	"github.com/code-payments/code-vault/pkg/database/query"
)

var (
	ErrEventNotFound = errors.New("event record not found")
	ErrEventExists   = errors.New("event record already exists")
)

type Store interface {
	// Save appends an event record. Events are immutable, so saving an existing
	// event ID fails with ErrEventExists.
	Save(ctx context.Context, record *Record) error

	// Get gets an event record by its event ID
	Get(ctx context.Context, eventId string) (*Record, error)

	// GetAllByTransaction gets all events emitted by a transaction, in emission order
	GetAllByTransaction(ctx context.Context, transaction string) ([]*Record, error)

	// GetAll gets all events over all programs using a paged API
	GetAll(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)

	// GetAllByProgram gets a program's events using a paged API, optionally
	// bounded by creation time
	GetAllByProgram(ctx context.Context, program string, opts ...query.Option) ([]*Record, error)
}
