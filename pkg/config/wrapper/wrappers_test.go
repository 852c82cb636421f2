package wrapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/config"
	"github.com/code-payments/code-vault/pkg/config/memory"
)

func testTypedConfig[T any](t *testing.T, wrapper config.Typed[T], mock *memory.Config, defaultValue, overridenValue T, rawOverride interface{}, unsupported interface{}) {
	ctx := context.Background()

	// Return the default value when no override is set
	val, err := wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)
	assert.Equal(t, defaultValue, wrapper.Get(ctx))

	// The overriden value is returned when set
	mock.SetValue(overridenValue)
	val, err = wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, overridenValue, val)

	// The raw env representation is converted
	mock.SetValue(rawOverride)
	val, err = wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, overridenValue, val)

	// The last observed config value is returned on error
	mock.InduceErrors()
	val, err = wrapper.GetSafe(ctx)
	require.Error(t, err)
	assert.Equal(t, overridenValue, val)
	assert.Equal(t, overridenValue, wrapper.Get(ctx))

	// The default value is returned when the override no longer has a value
	mock.StopInducingErrors()
	mock.ClearValue()
	val, err = wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)

	// Return an unsupported source value type
	mock.SetValue(unsupported)
	val, err = wrapper.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, defaultValue, val)
}

func TestBoolConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	testTypedConfig(t, NewBoolConfig(mock, true), mock, true, false, []byte("false"), 1.5)

	mock.SetValue([]byte("not a bool"))
	_, err := NewBoolConfig(mock, true).GetSafe(context.Background())
	assert.Error(t, err)
}

func TestUint64Config(t *testing.T) {
	mock := memory.NewConfig(nil)
	testTypedConfig(t, NewUint64Config(mock, 10), mock, uint64(10), uint64(256), []byte("256"), "256")

	mock.SetValue(-1)
	_, err := NewUint64Config(mock, 10).GetSafe(context.Background())
	assert.Error(t, err)

	mock.SetValue(7)
	assert.EqualValues(t, 7, NewUint64Config(mock, 10).Get(context.Background()))
}

func TestDurationConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	testTypedConfig(t, NewDurationConfig(mock, time.Second), mock, time.Second, 250*time.Millisecond, []byte("250ms"), 250)
}
