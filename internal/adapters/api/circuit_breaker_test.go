package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(1, 30*time.Second, clock)
	boom := errors.New("connection refused")

	assert.Equal(t, boom, cb.Call(func() error { return boom }))
	assert.Equal(t, CircuitOpen, cb.GetState())
	assert.ErrorIs(t, cb.Call(func() error { return nil }), ErrCircuitOpen)

	clock.Advance(30 * time.Second)
	assert.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, CircuitClosed, cb.GetState())
	assert.Equal(t, 0, cb.GetFailureCount())
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(3, time.Second, clock)
	boom := errors.New("timeout")
	for i := 0; i < 3; i++ {
		_ = cb.Call(func() error { return boom })
	}
	assert.Equal(t, CircuitOpen, cb.GetState())

	clock.Advance(time.Second)
	_ = cb.Call(func() error { return boom })

	assert.Equal(t, CircuitOpen, cb.GetState())
	assert.Equal(t, "open", cb.GetState().String())
}

func TestCircuitBreaker_RemoteRefusalsDoNotCount(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Second, nil)

	err := cb.Call(func() error { return NewRemoteError(403, []byte(`{"kind":"forbidden","message":"unknown shard"}`)) })

	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Equal(t, CircuitClosed, cb.GetState())
	cb.Reset()
	assert.Equal(t, 0, cb.GetFailureCount())
}
