package vault

import (
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/system"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

// Account references
//  0. [WRITE, SIGNER] Depositor
//  1. [WRITE] Vault
//  2. [] System program
func (p *Program) processDeposit(ctx *runtime.InvokeContext, data []byte) error {
	args, err := solana_vault.DepositInstructionArgsFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	depositor, err := ctx.Account(0)
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

	if args.Amount == 0 {
		return solana_vault.ErrInvalidAmount
	}
	if depositor.Lamports() < args.Amount {
		return solana_vault.ErrInsufficientBalance
	}
	if state.Locked {
		return solana_vault.ErrVaultLocked
	}

	// The depositor is system owned, so the move goes through the system program
	err = ctx.Invoke(system.Transfer(depositor.Key, vaultInfo.Key, args.Amount))
	if err != nil {
		return err
	}

	ctx.Emit(&solana_vault.DepositEvent{
		Amount:    args.Amount,
		Depositor: depositor.Key,
		Vault:     vaultInfo.Key,
	})
	return nil
}
