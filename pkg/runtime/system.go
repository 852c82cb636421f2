package runtime

import (
	"crypto/ed25519"
	"math"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/system"
)

// systemProgram is the builtin program that owns every fresh account, and is
// the only way to move lamports out of them.
type systemProgram struct{}

func (systemProgram) ProgramID() ed25519.PublicKey {
	return system.ProgramKey[:]
}

func (p systemProgram) Process(ctx *InvokeContext, data []byte) error {
	cmd, err := system.GetCommand(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	switch cmd {
	case system.CommandCreateAccount:
		args, err := system.ParseCreateAccountArgs(data)
		if err != nil {
			return solana.InstructionErrorInvalidInstructionData
		}
		return p.createAccount(ctx, args)
	case system.CommandTransfer:
		args, err := system.ParseTransferArgs(data)
		if err != nil {
			return solana.InstructionErrorInvalidInstructionData
		}
		return p.transfer(ctx, args)
	default:
		return solana.InstructionErrorInvalidInstructionData
	}
}

func (p systemProgram) createAccount(ctx *InvokeContext, args *system.CreateAccountArgs) error {
	funder, err := ctx.Account(0)
	if err != nil {
		return err
	}
	address, err := ctx.Account(1)
	if err != nil {
		return err
	}

	if address.Lamports() > 0 {
		return system.ErrAccountAlreadyInUse
	}

	if !address.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}
	if len(address.Data()) > 0 || !address.IsOwnedBy(p.ProgramID()) {
		return system.ErrAccountAlreadyInUse
	}
	if args.Size > system.MaxPermittedDataLength {
		return system.ErrInvalidAccountDataLength
	}

	address.SetData(make([]byte, args.Size))
	address.SetOwner(args.Owner)

	return p.move(funder, address, args.Lamports)
}

func (p systemProgram) transfer(ctx *InvokeContext, args *system.TransferArgs) error {
	from, err := ctx.Account(0)
	if err != nil {
		return err
	}
	to, err := ctx.Account(1)
	if err != nil {
		return err
	}

	return p.move(from, to, args.Lamports)
}

func (p systemProgram) move(from, to *AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	// Accounts holding data can't be debited through the system program
	if len(from.Data()) > 0 {
		return solana.InstructionErrorInvalidArgument
	}

	if lamports > from.Lamports() {
		return system.ErrResultWithNegativeLamports
	}

	if from.state == to.state {
		return nil
	}

	if to.Lamports() > math.MaxUint64-lamports {
		return solana.InstructionErrorArithmeticOverflow
	}

	from.SetLamports(from.Lamports() - lamports)
	to.SetLamports(to.Lamports() + lamports)
	return nil
}
