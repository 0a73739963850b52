package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDelivery = errors.New("delivery failed")

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	b := New(Config{MaxFailures: 3, Cooldown: time.Hour})

	for i := 0; i < 3; i++ {
		err := b.Call(func() error { return errDelivery })
		require.ErrorIs(t, err, errDelivery)
	}

	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Call(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	b := New(Config{MaxFailures: 1, Cooldown: time.Nanosecond})

	require.Error(t, b.Call(func() error { return errDelivery }))
	require.Equal(t, StateOpen, b.State())

	time.Sleep(time.Millisecond)

	require.NoError(t, b.Call(func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := New(Config{MaxFailures: 2, Cooldown: time.Hour})

	require.Error(t, b.Call(func() error { return errDelivery }))
	require.NoError(t, b.Call(func() error { return nil }))
	require.Error(t, b.Call(func() error { return errDelivery }))

	assert.Equal(t, StateClosed, b.State())
}

func TestRegistryIsolatesDestinations(t *testing.T) {
	r := NewRegistry(Config{MaxFailures: 1, Cooldown: time.Hour})

	require.Error(t, r.For("https://a.example/hook").Call(func() error { return errDelivery }))

	assert.Equal(t, StateOpen, r.For("https://a.example/hook").State())
	assert.Equal(t, StateClosed, r.For("https://b.example/hook").State())
}
