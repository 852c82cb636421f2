package testutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/solana"
)

// AssertInstructionError verifies that the provided error is an instruction
// error at the provided index, wrapping the expected error.
func AssertInstructionError(t *testing.T, err error, index int, expected error) {
	require.Error(t, err)

	var ixnErr *solana.InstructionError
	require.True(t, errors.As(err, &ixnErr), "unexpected error: %v", err)
	assert.Equal(t, index, ixnErr.Index)
	assert.True(t, errors.Is(ixnErr.Err, expected), "expected %v, got %v", expected, ixnErr.Err)
}

// AssertCustomError verifies that the provided error is an instruction error
// at the provided index carrying the custom program error code.
func AssertCustomError(t *testing.T, err error, index int, code uint32) {
	require.Error(t, err)

	var ixnErr *solana.InstructionError
	require.True(t, errors.As(err, &ixnErr), "unexpected error: %v", err)
	assert.Equal(t, index, ixnErr.Index)

	custom := ixnErr.CustomError()
	require.NotNil(t, custom, "expected custom error, got %v", ixnErr.Err)
	assert.EqualValues(t, code, *custom)
}
