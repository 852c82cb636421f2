package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var withdrawInstructionDiscriminator = []byte{
	183, 18, 70, 156, 148, 109, 161, 34,
}

const (
	WithdrawInstructionArgsSize = 8 // amount

	WithdrawInstructionAccountsSize = (32 + // authority
		32 + // vault
		32) // systemProgram

	WithdrawInstructionSize = (discriminatorSize + // discriminator
		WithdrawInstructionArgsSize) // args
)

type WithdrawInstructionArgs struct {
	Amount uint64
}

type WithdrawInstructionAccounts struct {
	Authority ed25519.PublicKey
	Vault     ed25519.PublicKey
}

func NewWithdrawInstruction(
	accounts *WithdrawInstructionAccounts,
	args *WithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, WithdrawInstructionSize)
	binary.PutDiscriminator(data, withdrawInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func WithdrawInstructionArgsFromBinary(data []byte) (*WithdrawInstructionArgs, error) {
	if len(data) < WithdrawInstructionSize {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], withdrawInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args WithdrawInstructionArgs
	offset := discriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)

	return &args, nil
}
