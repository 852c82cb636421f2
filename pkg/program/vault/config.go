package vault

import (
	"github.com/code-payments/code-vault/pkg/config"
	"github.com/code-payments/code-vault/pkg/config/env"
	"github.com/code-payments/code-vault/pkg/config/memory"
	"github.com/code-payments/code-vault/pkg/config/wrapper"
)

const (
	envConfigPrefix = "VAULT_PROGRAM_"

	AddressCacheSizeConfigEnvName = envConfigPrefix + "ADDRESS_CACHE_SIZE"
	defaultAddressCacheSize       = 100_000
)

type conf struct {
	addressCacheSize config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			addressCacheSize: env.NewUint64Config(AddressCacheSizeConfigEnvName, defaultAddressCacheSize),
		}
	}
}

type testOverrides struct {
	addressCacheSize uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			addressCacheSize: wrapper.NewUint64Config(memory.NewConfig(overrides.addressCacheSize), defaultAddressCacheSize),
		}
	}
}
