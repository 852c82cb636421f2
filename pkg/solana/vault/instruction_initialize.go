package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var initializeInstructionDiscriminator = []byte{
	175, 175, 109, 31, 13, 152, 155, 237,
}

const (
	InitializeInstructionArgsSize = 0

	InitializeInstructionAccountsSize = (32 + // authority
		32 + // vault
		32) // systemProgram

	InitializeInstructionSize = (discriminatorSize + // discriminator
		InitializeInstructionArgsSize) // args
)

type InitializeInstructionArgs struct {
}

type InitializeInstructionAccounts struct {
	Authority ed25519.PublicKey
	Vault     ed25519.PublicKey
}

func NewInitializeInstruction(
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, InitializeInstructionSize)
	binary.PutDiscriminator(data, initializeInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func InitializeInstructionArgsFromBinary(data []byte) (*InitializeInstructionArgs, error) {
	if len(data) < InitializeInstructionSize {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], initializeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	return &InitializeInstructionArgs{}, nil
}
