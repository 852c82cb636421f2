package event

import (
	"time"

	"github.com/code-payments/code-vault/pkg/config"
	"github.com/code-payments/code-vault/pkg/config/env"
	"github.com/code-payments/code-vault/pkg/config/memory"
	"github.com/code-payments/code-vault/pkg/config/wrapper"
)

const (
	envConfigPrefix = "EVENT_PUBLISHER_"

	BufferSizeConfigEnvName = envConfigPrefix + "BUFFER_SIZE"
	defaultBufferSize       = 1024

	WorkerCountConfigEnvName = envConfigPrefix + "WORKER_COUNT"
	defaultWorkerCount       = 4

	MaxAttemptsConfigEnvName = envConfigPrefix + "MAX_ATTEMPTS"
	defaultMaxAttempts       = 5

	BackoffConfigEnvName = envConfigPrefix + "BACKOFF"
	defaultBackoff       = 100 * time.Millisecond

	MaxBackoffConfigEnvName = envConfigPrefix + "MAX_BACKOFF"
	defaultMaxBackoff       = 5 * time.Second
)

type conf struct {
	bufferSize  config.Uint64
	workerCount config.Uint64
	maxAttempts config.Uint64
	backoff     config.Duration
	maxBackoff  config.Duration
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			bufferSize:  env.NewUint64Config(BufferSizeConfigEnvName, defaultBufferSize),
			workerCount: env.NewUint64Config(WorkerCountConfigEnvName, defaultWorkerCount),
			maxAttempts: env.NewUint64Config(MaxAttemptsConfigEnvName, defaultMaxAttempts),
			backoff:     env.NewDurationConfig(BackoffConfigEnvName, defaultBackoff),
			maxBackoff:  env.NewDurationConfig(MaxBackoffConfigEnvName, defaultMaxBackoff),
		}
	}
}

type testOverrides struct {
	bufferSize  uint64
	workerCount uint64
	maxAttempts uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			bufferSize:  wrapper.NewUint64Config(memory.NewConfig(overrides.bufferSize), defaultBufferSize),
			workerCount: wrapper.NewUint64Config(memory.NewConfig(overrides.workerCount), defaultWorkerCount),
			maxAttempts: wrapper.NewUint64Config(memory.NewConfig(overrides.maxAttempts), defaultMaxAttempts),
			backoff:     wrapper.NewDurationConfig(memory.NewConfig(time.Millisecond), defaultBackoff),
			maxBackoff:  wrapper.NewDurationConfig(memory.NewConfig(10*time.Millisecond), defaultMaxBackoff),
		}
	}
}
