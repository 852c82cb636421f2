package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana/binary"
)

const (
	DepositEventName    = "DepositEvent"
	WithdrawEventName   = "WithdrawEvent"
	ToggleLockEventName = "ToggleLockEvent"
)

var (
	depositEventDiscriminator    = []byte{120, 248, 61, 83, 31, 142, 107, 144}
	withdrawEventDiscriminator   = []byte{22, 9, 133, 26, 160, 44, 71, 192}
	toggleLockEventDiscriminator = []byte{194, 162, 188, 255, 218, 105, 100, 249}
)

const (
	DepositEventSize    = discriminatorSize + 8 + 32 + 32
	WithdrawEventSize   = discriminatorSize + 8 + 32 + 32
	ToggleLockEventSize = discriminatorSize + 32 + 32 + 1
)

type DepositEvent struct {
	Amount    uint64
	Depositor ed25519.PublicKey
	Vault     ed25519.PublicKey
}

func (e *DepositEvent) Name() string {
	return DepositEventName
}

func (e *DepositEvent) Marshal() []byte {
	data := make([]byte, DepositEventSize)

	var offset int
	binary.PutDiscriminator(data, depositEventDiscriminator, &offset)
	binary.PutUint64(data[offset:], e.Amount, &offset)
	binary.PutKey32(data[offset:], e.Depositor, &offset)
	binary.PutKey32(data[offset:], e.Vault, &offset)

	return data
}

func (e *DepositEvent) Unmarshal(data []byte) error {
	if len(data) < DepositEventSize || !bytes.Equal(data[:discriminatorSize], depositEventDiscriminator) {
		return ErrInvalidEventData
	}

	offset := discriminatorSize
	binary.GetUint64(data[offset:], &e.Amount, &offset)
	binary.GetKey32(data[offset:], &e.Depositor, &offset)
	binary.GetKey32(data[offset:], &e.Vault, &offset)

	return nil
}

type WithdrawEvent struct {
	Amount    uint64
	Vault     ed25519.PublicKey
	Authority ed25519.PublicKey
}

func (e *WithdrawEvent) Name() string {
	return WithdrawEventName
}

func (e *WithdrawEvent) Marshal() []byte {
	data := make([]byte, WithdrawEventSize)

	var offset int
	binary.PutDiscriminator(data, withdrawEventDiscriminator, &offset)
	binary.PutUint64(data[offset:], e.Amount, &offset)
	binary.PutKey32(data[offset:], e.Vault, &offset)
	binary.PutKey32(data[offset:], e.Authority, &offset)

	return data
}

func (e *WithdrawEvent) Unmarshal(data []byte) error {
	if len(data) < WithdrawEventSize || !bytes.Equal(data[:discriminatorSize], withdrawEventDiscriminator) {
		return ErrInvalidEventData
	}

	offset := discriminatorSize
	binary.GetUint64(data[offset:], &e.Amount, &offset)
	binary.GetKey32(data[offset:], &e.Vault, &offset)
	binary.GetKey32(data[offset:], &e.Authority, &offset)

	return nil
}

type ToggleLockEvent struct {
	Vault     ed25519.PublicKey
	Authority ed25519.PublicKey
	Locked    bool
}

func (e *ToggleLockEvent) Name() string {
	return ToggleLockEventName
}

func (e *ToggleLockEvent) Marshal() []byte {
	data := make([]byte, ToggleLockEventSize)

	var offset int
	binary.PutDiscriminator(data, toggleLockEventDiscriminator, &offset)
	binary.PutKey32(data[offset:], e.Vault, &offset)
	binary.PutKey32(data[offset:], e.Authority, &offset)
	binary.PutBool(data[offset:], e.Locked, &offset)

	return data
}

func (e *ToggleLockEvent) Unmarshal(data []byte) error {
	if len(data) < ToggleLockEventSize || !bytes.Equal(data[:discriminatorSize], toggleLockEventDiscriminator) {
		return ErrInvalidEventData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &e.Vault, &offset)
	binary.GetKey32(data[offset:], &e.Authority, &offset)
	binary.GetBool(data[offset:], &e.Locked, &offset)

	return nil
}
