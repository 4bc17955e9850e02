package api

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// CircuitState is the state of the breaker guarding one sibling shard
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return fmt.Sprintf("CircuitState(%d)", int(s))
	}
}

// ErrCircuitOpen is returned without contacting a sibling whose breaker is open
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreaker stops deliveries to a sibling shard after maxFailures consecutive
// transport failures. Answers from the sibling itself (a *RemoteError) do not count:
// the shard is reachable, it just refused the request.
type CircuitBreaker struct {
	maxFailures     int
	timeout         time.Duration
	clock           shared.Clock
	mu              sync.Mutex
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
}

// NewCircuitBreaker creates a closed breaker; a nil clock uses the real clock
func NewCircuitBreaker(maxFailures int, timeout time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		timeout:     timeout,
		clock:       clock,
		state:       CircuitClosed,
	}
}

// Call runs fn unless the circuit is open. After timeout an open circuit lets one
// call through to probe the sibling.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.clock.Now().Sub(cb.lastFailureTime) < cb.timeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
	}
	cb.mu.Unlock()

	// fn may retry and sleep; the lock is not held meanwhile
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	var remote *RemoteError
	if err != nil && !errors.As(err, &remote) {
		cb.failureCount++
		cb.lastFailureTime = cb.clock.Now()
		if cb.state == CircuitHalfOpen || cb.failureCount >= cb.maxFailures {
			cb.state = CircuitOpen
		}
		return err
	}
	cb.failureCount = 0
	cb.state = CircuitClosed
	return err
}

// GetState returns the current state
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// GetFailureCount returns the consecutive transport failure count
func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}

// Reset closes the circuit
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failureCount = 0
}
