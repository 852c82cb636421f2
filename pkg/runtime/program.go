package runtime

import (
	"crypto/ed25519"
)

// Program is executable logic owned by an address. Programs only see the
// accounts passed to an instruction, and the runtime verifies every change
// they make before it is committed.
type Program interface {
	ProgramID() ed25519.PublicKey
	Process(ctx *InvokeContext, data []byte) error
}

// Account is a read-only view of committed account state
type Account struct {
	Address  ed25519.PublicKey
	Owner    ed25519.PublicKey
	Lamports uint64
	Data     []byte
	Version  uint64
}
