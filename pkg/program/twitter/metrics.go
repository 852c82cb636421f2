package twitter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

const (
	instructionProcessedEventName = "TwitterInstructionProcessed"
)

func recordInstructionEvent(ctx context.Context, instructionType solana_twitter.InstructionType, err error) {
	kvPairs := map[string]interface{}{
		"instruction": instructionType.String(),
		"success":     err == nil,
	}

	var twitterErr solana_twitter.TwitterError
	var key solana.InstructionErrorKey
	if errors.As(err, &twitterErr) {
		kvPairs["error"] = twitterErr.Error()
		kvPairs["custom_error"] = twitterErr.CustomErrorCode()
	} else if errors.As(err, &key) {
		kvPairs["error_key"] = string(key)
	} else if err != nil {
		kvPairs["error"] = err.Error()
	}

	metrics.RecordEvent(ctx, instructionProcessedEventName, kvPairs)
}
