package vault

import (
	"context"

	"github.com/pkg/errors"

	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

const (
	instructionProcessedEventName = "VaultInstructionProcessed"
)

func recordInstructionEvent(ctx context.Context, instructionType solana_vault.InstructionType, err error) {
	kvPairs := map[string]interface{}{
		"instruction": instructionType.String(),
		"success":     err == nil,
	}

	var vaultErr solana_vault.VaultError
	var key solana.InstructionErrorKey
	if errors.As(err, &vaultErr) {
		kvPairs["error"] = vaultErr.Error()
		kvPairs["custom_error"] = vaultErr.CustomErrorCode()
	} else if errors.As(err, &key) {
		kvPairs["error_key"] = string(key)
	} else if err != nil {
		kvPairs["error"] = err.Error()
	}

	metrics.RecordEvent(ctx, instructionProcessedEventName, kvPairs)
}
