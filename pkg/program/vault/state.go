package vault

import (
	"bytes"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

// loadVault validates the relationship between a vault account and this
// program, and returns its decoded state.
func (p *Program) loadVault(info *runtime.AccountInfo) (*solana_vault.VaultAccount, error) {
	if !info.IsOwnedBy(solana_vault.PROGRAM_ID) {
		if info.IsEmpty() {
			return nil, solana_vault.ErrVaultNotInitialized
		}
		return nil, solana.InstructionErrorIncorrectProgramID
	}

	var state solana_vault.VaultAccount
	if err := state.Unmarshal(info.Data()); err != nil {
		return nil, solana_vault.ErrVaultNotInitialized
	}

	expected, _, err := p.getVaultAddress(state.Authority)
	if err != nil || !bytes.Equal(expected, info.Key) {
		return nil, solana_vault.ErrInvalidVaultAddress
	}

	return &state, nil
}

// saveVault writes state back into the account data in place
func saveVault(info *runtime.AccountInfo, state *solana_vault.VaultAccount) {
	copy(info.Data(), state.Marshal())
}

// checkAuthority requires the account to be the vault's authority, and to
// have signed the transaction.
func checkAuthority(info *runtime.AccountInfo, state *solana_vault.VaultAccount) error {
	if !bytes.Equal(info.Key, state.Authority) || !info.IsSigner {
		return solana_vault.ErrUnauthorized
	}
	return nil
}
