package vault

type VaultError uint32

const (
	// Insufficient balance for the requested transfer
	ErrInsufficientBalance VaultError = iota + 0x1770

	// The vault is locked
	ErrVaultLocked

	// Amount must be greater than zero
	ErrInvalidAmount

	// Signer is not the vault authority
	ErrUnauthorized

	// Vault address does not derive from the authority
	ErrInvalidVaultAddress

	// The vault has already been initialized
	ErrVaultAlreadyInitialized

	// The vault has not been initialized
	ErrVaultNotInitialized
)

func (e VaultError) Error() string {
	switch e {
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrVaultLocked:
		return "vault is locked"
	case ErrInvalidAmount:
		return "amount must be greater than zero"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrInvalidVaultAddress:
		return "invalid vault address"
	case ErrVaultAlreadyInitialized:
		return "vault already initialized"
	case ErrVaultNotInitialized:
		return "vault not initialized"
	}
	return "unknown vault error"
}

func (e VaultError) CustomErrorCode() uint32 {
	return uint32(e)
}

// ErrorFromCode returns the vault error for a custom program error code.
func ErrorFromCode(code uint32) (VaultError, bool) {
	e := VaultError(code)
	if e < ErrInsufficientBalance || e > ErrVaultNotInitialized {
		return 0, false
	}
	return e, true
}
