package runtime

import (
	"context"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/solana"
)

const (
	transactionExecutedEventName  = "TransactionExecuted"
	transactionDurationMetricName = "Runtime.TransactionDuration"
)

func recordTransactionExecutedEvent(ctx context.Context, txn *solana.Transaction, err error, duration time.Duration) {
	kvPairs := map[string]interface{}{
		"success":     err == nil,
		"duration_ms": duration.Milliseconds(),
	}

	if len(txn.Signatures) > 0 {
		kvPairs["signature"] = base58.Encode(txn.Signature())
	}

	var ixnErr *solana.InstructionError
	if errors.As(err, &ixnErr) {
		kvPairs["instruction"] = ixnErr.Index
		kvPairs["error_key"] = string(ixnErr.ErrorKey())
		if custom := ixnErr.CustomError(); custom != nil {
			kvPairs["custom_error"] = uint32(*custom)
		}
	} else if err != nil {
		kvPairs["error"] = err.Error()
	}

	metrics.RecordEvent(ctx, transactionExecutedEventName, kvPairs)
	metrics.RecordDuration(ctx, transactionDurationMetricName, duration)
}
