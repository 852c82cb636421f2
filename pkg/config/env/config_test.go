package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/code-vault/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	t.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	t.Setenv(env, "")

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	t.Setenv("ENV_CONFIG_TEST_UINT", "42")
	t.Setenv("ENV_CONFIG_TEST_BOOL", "true")
	t.Setenv("ENV_CONFIG_TEST_DURATION", "3s")

	ctx := context.Background()
	assert.EqualValues(t, 42, NewUint64Config("env_config_test_uint", 1).Get(ctx))
	assert.True(t, NewBoolConfig("ENV_CONFIG_TEST_BOOL", false).Get(ctx))
	assert.Equal(t, 3*time.Second, NewDurationConfig("ENV_CONFIG_TEST_DURATION", time.Second).Get(ctx))
	assert.EqualValues(t, 9, NewUint64Config("ENV_CONFIG_TEST_MISSING", 9).Get(ctx))
}
