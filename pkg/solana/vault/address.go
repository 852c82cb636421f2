package vault

import (
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
)

var (
	VaultPrefix = []byte("vault")
)

// GetVaultAddress returns the vault owned by the provided authority. There is
// exactly one vault per authority.
func GetVaultAddress(authority ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultPrefix,
		authority,
	)
}

// GetVaultSeeds returns the signer seeds of the vault, including the bump.
func GetVaultSeeds(authority ed25519.PublicKey, bump uint8) [][]byte {
	return [][]byte{VaultPrefix, authority, {bump}}
}
