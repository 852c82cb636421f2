package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/code-vault/pkg/retry/backoff"
)

func TestRealSleeper(t *testing.T) {
	sleeperImpl = &realSleeper{}

	start := time.Now()
	n, err := Retry(func() error { return errors.New("err") },
		Limit(2),
		Backoff(backoff.Constant(500*time.Millisecond), 500*time.Millisecond),
	)

	assert.NotNil(t, err)
	assert.EqualValues(t, 2, n)
	assert.True(t, 500*time.Millisecond <= time.Since(start))
	assert.True(t, 1*time.Second > time.Since(start))
}

func TestRetry_Filters(t *testing.T) {
	sleeperImpl = &testSleeper{}
	retriableErr := errors.New("retriable")
	strategies := []Strategy{Limit(5), RetriableErrors(retriableErr)}

	// Happy path always goes through
	attempts, err := Retry(func() error { return nil }, strategies...)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = Retry(func() error { return errors.New("unknown") }, strategies...)
	assert.Error(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = Retry(func() error { return retriableErr }, strategies...)
	assert.EqualError(t, retriableErr, err.Error())
	assert.Equal(t, uint(5), attempts)

	var calls int
	attempts, err = Retry(func() error {
		calls++
		if calls < 3 {
			return retriableErr
		}
		return nil
	}, append(strategies, Backoff(backoff.BinaryExponential(time.Millisecond), time.Second))...)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, sleeperImpl.(*testSleeper).sleepTimes)
}
