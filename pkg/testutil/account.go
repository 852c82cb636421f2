package testutil

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/data/account"
	"github.com/code-payments/code-vault/pkg/solana/system"
)

// Account is a keypair for signing test transactions
type Account struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

func NewRandomAccount(t *testing.T) *Account {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return &Account{
		PublicKey:  pub,
		PrivateKey: priv,
	}
}

func (a *Account) String() string {
	return base58.Encode(a.PublicKey)
}

// FundAccount seeds a system-owned balance directly into the store, creating
// the account when it doesn't exist.
func FundAccount(t *testing.T, store account.Store, address ed25519.PublicKey, lamports uint64) {
	ctx := context.Background()

	encoded := base58.Encode(address)

	record, err := store.Get(ctx, encoded)
	if errors.Is(err, account.ErrAccountNotFound) {
		record = &account.Record{
			Address: encoded,
			Owner:   base58.Encode(system.ProgramKey[:]),
		}
	} else {
		require.NoError(t, err)
	}

	record.Lamports = lamports
	require.NoError(t, store.SaveBatch(ctx, record))
}

// GetBalance returns the committed lamports of an address, or zero if it was
// never saved.
func GetBalance(t *testing.T, store account.Store, address ed25519.PublicKey) uint64 {
	record, err := store.Get(context.Background(), base58.Encode(address))
	if errors.Is(err, account.ErrAccountNotFound) {
		return 0
	}
	require.NoError(t, err)
	return record.Lamports
}
