package testutil

import (
	"time"

	"github.com/pkg/errors"
)

// WaitFor polls condition every interval until it holds, failing once timeout
// has elapsed.
func WaitFor(timeout, interval time.Duration, condition func() bool) error {
	if timeout < interval {
		return errors.Errorf("timeout %v is shorter than interval %v", timeout, interval)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if condition() {
			return nil
		}

		select {
		case <-deadline.C:
			if condition() {
				return nil
			}
			return errors.Errorf("condition not met within %v", timeout)
		case <-ticker.C:
		}
	}
}
