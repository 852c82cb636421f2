package vault

import (
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

// Account references
//  0. [SIGNER] Authority
//  1. [WRITE] Vault
func (p *Program) processToggleLock(ctx *runtime.InvokeContext, data []byte) error {
	if _, err := solana_vault.ToggleLockInstructionArgsFromBinary(data); err != nil {
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

	state.Locked = !state.Locked
	saveVault(vaultInfo, state)

	ctx.Emit(&solana_vault.ToggleLockEvent{
		Vault:     vaultInfo.Key,
		Authority: authority.Key,
		Locked:    state.Locked,
	})
	return nil
}
