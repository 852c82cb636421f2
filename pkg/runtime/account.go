package runtime

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/code-payments/code-vault/pkg/data/account"
	"github.com/code-payments/code-vault/pkg/solana/system"
)

// accountState is the working copy of an account within a transaction. Every
// AccountInfo referencing the same address shares a single accountState.
type accountState struct {
	key      ed25519.PublicKey
	owner    ed25519.PublicKey
	lamports uint64
	data     []byte

	// Committed state, used to detect changes and for optimistic concurrency
	loaded *account.Record
}

func newEmptyAccountState(key ed25519.PublicKey) *accountState {
	owner := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(owner, system.ProgramKey[:])

	return &accountState{
		key:   key,
		owner: owner,
	}
}

func accountStateFromRecord(key ed25519.PublicKey, record *account.Record) (*accountState, error) {
	owner, err := base58.Decode(record.Owner)
	if err != nil || len(owner) != ed25519.PublicKeySize {
		return nil, ErrInvalidAccountEncoding
	}

	data := make([]byte, len(record.Data))
	copy(data, record.Data)

	return &accountState{
		key:      key,
		owner:    owner,
		lamports: record.Lamports,
		data:     data,
		loaded:   record,
	}, nil
}

func (s *accountState) isModified() bool {
	if s.loaded == nil {
		return s.lamports != 0 || len(s.data) != 0 || !bytes.Equal(s.owner, system.ProgramKey[:])
	}

	return s.lamports != s.loaded.Lamports ||
		!bytes.Equal(s.data, s.loaded.Data) ||
		base58.Encode(s.owner) != s.loaded.Owner
}

func (s *accountState) toRecord() *account.Record {
	record := &account.Record{
		Address:  base58.Encode(s.key),
		Owner:    base58.Encode(s.owner),
		Lamports: s.lamports,
		Data:     s.data,
	}
	if s.loaded != nil {
		record.Id = s.loaded.Id
		record.Version = s.loaded.Version
	}
	return record
}

func (s *accountState) toAccount() *Account {
	data := make([]byte, len(s.data))
	copy(data, s.data)

	var version uint64
	if s.loaded != nil {
		version = s.loaded.Version
	}

	return &Account{
		Address:  s.key,
		Owner:    s.owner,
		Lamports: s.lamports,
		Data:     data,
		Version:  version,
	}
}

// AccountInfo is an account as seen by an executing program
type AccountInfo struct {
	Key        ed25519.PublicKey
	IsSigner   bool
	IsWritable bool

	state *accountState
}

func (a *AccountInfo) Owner() ed25519.PublicKey {
	return a.state.owner
}

func (a *AccountInfo) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.state.owner, program)
}

func (a *AccountInfo) Lamports() uint64 {
	return a.state.lamports
}

// Data returns the account's data. Programs may modify it in place.
func (a *AccountInfo) Data() []byte {
	return a.state.data
}

func (a *AccountInfo) SetLamports(lamports uint64) {
	a.state.lamports = lamports
}

func (a *AccountInfo) SetData(data []byte) {
	a.state.data = data
}

func (a *AccountInfo) SetOwner(owner ed25519.PublicKey) {
	a.state.owner = owner
}

// IsEmpty returns whether the account is indistinguishable from one that was
// never created.
func (a *AccountInfo) IsEmpty() bool {
	return a.state.lamports == 0 && len(a.state.data) == 0 && a.IsOwnedBy(system.ProgramKey[:])
}

func (a *AccountInfo) String() string {
	return base58.Encode(a.Key)
}
