package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var depositInstructionDiscriminator = []byte{
	242, 35, 198, 137, 82, 225, 242, 182,
}

const (
	DepositInstructionArgsSize = 8 // amount

	DepositInstructionAccountsSize = (32 + // depositor
		32 + // vault
		32) // systemProgram

	DepositInstructionSize = (discriminatorSize + // discriminator
		DepositInstructionArgsSize) // args
)

type DepositInstructionArgs struct {
	Amount uint64
}

type DepositInstructionAccounts struct {
	Depositor ed25519.PublicKey
	Vault     ed25519.PublicKey
}

func NewDepositInstruction(
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, DepositInstructionSize)
	binary.PutDiscriminator(data, depositInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Depositor, true),
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func DepositInstructionArgsFromBinary(data []byte) (*DepositInstructionArgs, error) {
	if len(data) < DepositInstructionSize {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], depositInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args DepositInstructionArgs
	offset := discriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)

	return &args, nil
}
