package account

import (
	"context"
	"errors"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrStaleAccountState = errors.New("account state is stale")
)

type Store interface {
	// Get gets an account's state by its address
	Get(ctx context.Context, address string) (*Record, error)

	// GetBatch is like Get, but for multiple accounts. Addresses without a
	// saved state are omitted from the result.
	GetBatch(ctx context.Context, addresses ...string) (map[string]*Record, error)

	// SaveBatch atomically saves the provided account states. Each record's
	// version must match the stored version, otherwise ErrStaleAccountState is
	// returned and nothing is saved. On success, each record's version is
	// incremented in place.
	SaveBatch(ctx context.Context, records ...*Record) error
}
