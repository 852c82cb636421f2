package tip

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58/base58"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrInvalidEventData       = errors.New("unexpected event data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("4K6LtuL5hK9FGADBNgiw5cXyk3RPPz3LeLwq7M8xUzUS")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

const (
	discriminatorSize = binary.DiscriminatorSize

	// MaxMessageLength is the longest tip message, in bytes.
	MaxMessageLength = 200
)

var (
	TipHistoryPrefix = []byte("tip_history")
)

type TipError uint32

const (
	// Amount must be greater than 0
	ErrInvalidAmount TipError = iota + 0x1770

	// Insufficient balance
	ErrInsufficientBalance

	// Message exceeds the maximum length
	ErrMessageTooLong

	// A tip was already recorded for this tipper and timestamp
	ErrTipHistoryAlreadyExists
)

func (e TipError) Error() string {
	switch e {
	case ErrInvalidAmount:
		return "amount must be greater than 0"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrMessageTooLong:
		return "message too long"
	case ErrTipHistoryAlreadyExists:
		return "tip history already exists"
	}
	return "unknown tip error"
}

func (e TipError) CustomErrorCode() uint32 {
	return uint32(e)
}

// GetTipHistoryAddress returns the record of a tip sent by tipper at the
// provided unix timestamp.
func GetTipHistoryAddress(tipper ed25519.PublicKey, timestamp int64) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		GetTipHistorySeeds(tipper, timestamp)...,
	)
}

func GetTipHistorySeeds(tipper ed25519.PublicKey, timestamp int64, bump ...uint8) [][]byte {
	seeds := [][]byte{TipHistoryPrefix, tipper, timestampSeed(timestamp)}
	if len(bump) > 0 {
		seeds = append(seeds, []byte{bump[0]})
	}
	return seeds
}

func timestampSeed(timestamp int64) []byte {
	var seed [8]byte
	v := uint64(timestamp)
	for i := 7; i >= 0; i-- {
		seed[i] = byte(v)
		v >>= 8
	}
	return seed[:]
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
