package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps tests quick.
func fastConfig(attempts int) Config {
	return DeliveryConfig(attempts).WithInitialDelay(time.Millisecond)
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("smtp: 421 try again later")
		}
		return nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	want := errors.New("connection refused")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return want
	}, fastConfig(2))

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 2, calls)
}

func TestDo_PermanentErrorStops(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return NewPermanent(errors.New("invalid recipient"))
	}, fastConfig(5))

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroMaxAttempts(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), func() error {
		calls++
		return errors.New("fail")
	}, Config{})

	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, func() error {
		calls++
		cancel()
		return errors.New("fail")
	}, fastConfig(5))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_OnRetryCalledBetweenAttempts(t *testing.T) {
	var attempts []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		attempts = append(attempts, attempt)
		assert.Error(t, err)
		assert.Greater(t, wait, time.Duration(0))
	}

	_ = Do(context.Background(), func() error { return errors.New("fail") }, cfg)

	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_RetryIfPredicate(t *testing.T) {
	retryable := errors.New("retryable")
	calls := 0
	cfg := fastConfig(4)
	cfg.RetryIf = func(err error) bool { return errors.Is(err, retryable) }

	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return retryable
		}
		return errors.New("fatal")
	}, cfg)

	assert.EqualError(t, err, "fatal")
	assert.Equal(t, 2, calls)
}

func TestCalculateSleepTime_MaxDelay(t *testing.T) {
	got := calculateSleepTime(time.Minute, time.Second, 0.5)
	assert.Equal(t, time.Second, got)
}

func TestPermanent(t *testing.T) {
	inner := errors.New("bad address")
	err := NewPermanent(inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "bad address", err.Error())
	assert.Nil(t, NewPermanent(nil))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())
	assert.False(t, SkipPermanent(err))
	assert.True(t, SkipPermanent(inner))
}

func TestDeliveryConfig(t *testing.T) {
	cfg := DeliveryConfig(3)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxDelay)
	assert.NotNil(t, cfg.RetryIf)
	assert.Equal(t, 5, cfg.WithMaxAttempts(5).MaxAttempts)
}
