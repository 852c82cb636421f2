package vault

import (
	"math"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

// Account references
//  0. [WRITE, SIGNER] Authority
//  1. [WRITE] Vault
//  2. [] System program
func (p *Program) processWithdraw(ctx *runtime.InvokeContext, data []byte) error {
	args, err := solana_vault.WithdrawInstructionArgsFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	authority, err := ctx.Account(0)
	if err != nil {
		return err
	}
	vaultInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}

	state, err := p.loadVault(vaultInfo)
	if err != nil {
		return err
	}

	if err := checkAuthority(authority, state); err != nil {
		return err
	}
	if args.Amount == 0 {
		return solana_vault.ErrInvalidAmount
	}
	if state.Locked {
		return solana_vault.ErrVaultLocked
	}
	if vaultInfo.Lamports() < args.Amount {
		return solana_vault.ErrInsufficientBalance
	}

	if err := moveVaultLamports(vaultInfo, authority, args.Amount); err != nil {
		return err
	}

	ctx.Emit(&solana_vault.WithdrawEvent{
		Amount:    args.Amount,
		Vault:     vaultInfo.Key,
		Authority: authority.Key,
	})
	return nil
}

// moveVaultLamports debits the vault directly. The vault has no private key,
// so the system program can't move its lamports, but this program owns it.
// It performs no authorization and must only be reached after checkAuthority.
func moveVaultLamports(from, to *runtime.AccountInfo, amount uint64) error {
	if from.Lamports() < amount {
		return solana_vault.ErrInsufficientBalance
	}
	if to.Lamports() > math.MaxUint64-amount {
		return solana.InstructionErrorArithmeticOverflow
	}

	from.SetLamports(from.Lamports() - amount)
	to.SetLamports(to.Lamports() + amount)
	return nil
}
