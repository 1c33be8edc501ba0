package resilience

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priorlab/conjugate/internal/errors"
)

func TestRetryWithConfigRetriesTransientErrors(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialDelay = time.Millisecond
	config.JitterEnabled = false

	attempts := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		attempts++
		if attempts < 3 {
			return errors.NewNetworkError("fetch failed", nil)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithConfigDefaultsPredicate(t *testing.T) {
	// a hand-built config without a predicate must still classify errors
	// instead of panicking
	config := RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
		BackoffFactor: 1.0,
	}

	attempts := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		attempts++
		if attempts < 2 {
			return errors.NewNetworkError("fetch failed", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	attempts = 0
	err = RetryWithConfig(context.Background(), config, func() error {
		attempts++
		return errors.NewInvalidInput("bad row")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithConfigStopsOnNonRetryable(t *testing.T) {
	config := DefaultRetryConfig()
	config.InitialDelay = time.Millisecond
	config.JitterEnabled = false

	attempts := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		attempts++
		return errors.NewInvalidParameter("variance must be positive")
	})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidParameter(err))
	assert.Equal(t, 1, attempts)
}

func TestRetryWithConfigHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithConfig(ctx, DefaultRetryConfig(), func() error {
		return fmt.Errorf("should not run")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay(t *testing.T) {
	config := RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, calculateDelay(config, 0))
	assert.Equal(t, 200*time.Millisecond, calculateDelay(config, 1))
	assert.Equal(t, 400*time.Millisecond, calculateDelay(config, 2))
	// capped at MaxDelay past the fourth attempt
	assert.Equal(t, time.Second, calculateDelay(config, 10))
}
