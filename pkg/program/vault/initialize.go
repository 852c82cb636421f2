package vault

import (
	"bytes"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

// Account references
//  0. [WRITE, SIGNER] Authority, pays for the vault
//  1. [WRITE] Vault
//  2. [] System program
func (p *Program) processInitialize(ctx *runtime.InvokeContext, data []byte) error {
	if _, err := solana_vault.InitializeInstructionArgsFromBinary(data); err != nil {
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

	if !authority.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}

	address, bump, err := p.getVaultAddress(authority.Key)
	if err != nil || !bytes.Equal(address, vaultInfo.Key) {
		return solana_vault.ErrInvalidVaultAddress
	}

	if !vaultInfo.IsEmpty() {
		return solana_vault.ErrVaultAlreadyInitialized
	}

	err = ctx.CreateProgramAccount(
		authority,
		vaultInfo,
		solana_vault.VaultAccountSize,
		0,
		solana_vault.GetVaultSeeds(authority.Key, bump),
	)
	if err != nil {
		return err
	}

	// New vaults start unlocked
	saveVault(vaultInfo, &solana_vault.VaultAccount{
		Authority: authority.Key,
		Locked:    false,
	})

	ctx.Log().WithField("vault", vaultInfo.String()).Debug("vault initialized")
	return nil
}
