package vault

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58/base58"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrInvalidEventData       = errors.New("unexpected event data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("co7vSN7oHKb5fTzurnBdCapK6juDio2wqkMoMf9jC99")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

type InstructionType uint8

const (
	InstructionTypeUnknown InstructionType = iota
	InstructionTypeInitialize
	InstructionTypeDeposit
	InstructionTypeWithdraw
	InstructionTypeToggleLock
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "initialize"
	case InstructionTypeDeposit:
		return "deposit"
	case InstructionTypeWithdraw:
		return "withdraw"
	case InstructionTypeToggleLock:
		return "toggle_lock"
	}
	return "unknown"
}

// GetInstructionType resolves the instruction from its 8 byte discriminator.
func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) < discriminatorSize {
		return InstructionTypeUnknown, ErrInvalidInstructionData
	}

	switch string(data[:discriminatorSize]) {
	case string(initializeInstructionDiscriminator):
		return InstructionTypeInitialize, nil
	case string(depositInstructionDiscriminator):
		return InstructionTypeDeposit, nil
	case string(withdrawInstructionDiscriminator):
		return InstructionTypeWithdraw, nil
	case string(toggleLockInstructionDiscriminator):
		return InstructionTypeToggleLock, nil
	}

	return InstructionTypeUnknown, ErrInvalidInstructionData
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
