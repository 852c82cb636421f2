package runtime

import (
	"github.com/code-payments/code-vault/pkg/config"
	"github.com/code-payments/code-vault/pkg/config/env"
	"github.com/code-payments/code-vault/pkg/config/memory"
	"github.com/code-payments/code-vault/pkg/config/wrapper"
)

const (
	envConfigPrefix = "RUNTIME_"

	LockStripesConfigEnvName = envConfigPrefix + "LOCK_STRIPES"
	defaultLockStripes       = 1024

	VerifySignaturesConfigEnvName = envConfigPrefix + "VERIFY_SIGNATURES"
	defaultVerifySignatures       = true
)

type conf struct {
	lockStripes      config.Uint64
	verifySignatures config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			lockStripes:      env.NewUint64Config(LockStripesConfigEnvName, defaultLockStripes),
			verifySignatures: env.NewBoolConfig(VerifySignaturesConfigEnvName, defaultVerifySignatures),
		}
	}
}

type testOverrides struct {
	lockStripes      uint64
	verifySignatures bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			lockStripes:      wrapper.NewUint64Config(memory.NewConfig(overrides.lockStripes), defaultLockStripes),
			verifySignatures: wrapper.NewBoolConfig(memory.NewConfig(overrides.verifySignatures), defaultVerifySignatures),
		}
	}
}
