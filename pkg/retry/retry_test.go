package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestDoWithResult_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0

	got, err := DoWithResult(context.Background(), fastConfig(), "op", func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	_, err := DoWithResult(context.Background(), fastConfig(), "op", func() (int, error) {
		calls++
		return 0, boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_NonRetryableErrorStopsImmediately(t *testing.T) {
	cfg := fastConfig()
	permanent := errors.New("permanent")
	cfg.RetryableErrors = func(err error) bool { return !errors.Is(err, permanent) }
	calls := 0

	_, err := DoWithResult(context.Background(), cfg, "op", func() (int, error) {
		calls++
		return 0, permanent
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoWithResult(ctx, fastConfig(), "op", func() (int, error) {
		return 0, errors.New("transient")
	})

	assert.Error(t, err)
}

func TestDo_WrapsDoWithResult(t *testing.T) {
	calls := 0

	err := Do(context.Background(), fastConfig(), "op", func() error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
