package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var toggleLockInstructionDiscriminator = []byte{
	188, 144, 112, 220, 80, 184, 226, 12,
}

const (
	ToggleLockInstructionArgsSize = 0

	ToggleLockInstructionAccountsSize = (32 + // authority
		32) // vault

	ToggleLockInstructionSize = (discriminatorSize + // discriminator
		ToggleLockInstructionArgsSize) // args
)

type ToggleLockInstructionArgs struct {
}

type ToggleLockInstructionAccounts struct {
	Authority ed25519.PublicKey
	Vault     ed25519.PublicKey
}

func NewToggleLockInstruction(
	accounts *ToggleLockInstructionAccounts,
	args *ToggleLockInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, ToggleLockInstructionSize)
	binary.PutDiscriminator(data, toggleLockInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Vault, false),
	)
}

func ToggleLockInstructionArgsFromBinary(data []byte) (*ToggleLockInstructionArgs, error) {
	if len(data) < ToggleLockInstructionSize {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], toggleLockInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	return &ToggleLockInstructionArgs{}, nil
}
