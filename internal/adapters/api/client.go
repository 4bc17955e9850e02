package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = 500 * time.Millisecond
)

// Recorder receives request metrics; satisfied by the metrics adapter
type Recorder interface {
	RecordAPIRequest(shard, method string, statusCode int, duration float64)
	RecordAPIRetry(shard, method, reason string)
	RecordRateLimitWait(shard string, duration float64)
}

// ClientOptions configures a ShardClient. Zero values take defaults, except
// MaxRetries: zero disables retries and a negative value takes the default.
type ClientOptions struct {
	Timeout            time.Duration
	RequestsPerSecond  int
	Burst              int
	MaxRetries         int
	BackoffBase        time.Duration
	BreakerMaxFailures int
	BreakerTimeout     time.Duration
	Clock              shared.Clock
	Recorder           Recorder
}

// ShardClient delivers transfer packages to sibling shards over HTTP. It implements
// transfer.Gateway.
type ShardClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	recorder    Recorder

	breakerMaxFailures int
	breakerTimeout     time.Duration
	mu                 sync.Mutex
	breakers           map[string]*CircuitBreaker
}

// NewShardClient creates a client with one circuit breaker per destination shard
func NewShardClient(opts ClientOptions) *ShardClient {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = opts.RequestsPerSecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.BreakerMaxFailures <= 0 {
		opts.BreakerMaxFailures = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	return &ShardClient{
		httpClient:         &http.Client{Timeout: opts.Timeout},
		rateLimiter:        rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		maxRetries:         opts.MaxRetries,
		backoffBase:        opts.BackoffBase,
		clock:              opts.Clock,
		recorder:           opts.Recorder,
		breakerMaxFailures: opts.BreakerMaxFailures,
		breakerTimeout:     opts.BreakerTimeout,
		breakers:           make(map[string]*CircuitBreaker),
	}
}

// Deliver registers the player on the destination shard, then creates the unit there
func (c *ShardClient) Deliver(ctx context.Context, pkg *transfer.Package) error {
	return c.breaker(pkg.Wormhole.Name).Call(func() error {
		if err := c.request(ctx, pkg.Wormhole, http.MethodPut, PlayerPath(pkg.Player.ID), PlayerBodyFromPackage(pkg), nil); err != nil {
			return fmt.Errorf("failed to register player on %s: %w", pkg.Wormhole.Name, err)
		}
		if err := c.request(ctx, pkg.Wormhole, http.MethodPut, UnitPath(pkg.Player.ID, pkg.Unit.ID), UnitBodyFromPackage(pkg), nil); err != nil {
			return fmt.Errorf("failed to create unit on %s: %w", pkg.Wormhole.Name, err)
		}
		return nil
	})
}

// BreakerState reports the circuit state towards a destination shard
func (c *ShardClient) BreakerState(shard string) CircuitState {
	return c.breaker(shard).GetState()
}

func (c *ShardClient) breaker(shard string) *CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	cb, ok := c.breakers[shard]
	if !ok {
		cb = NewCircuitBreaker(c.breakerMaxFailures, c.breakerTimeout, c.clock)
		c.breakers[shard] = cb
	}
	return cb
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// request makes an HTTP request with rate limiting and exponential backoff retries.
// Network errors, 429 and 5xx responses are retried; other failures are returned as
// a *RemoteError.
func (c *ShardClient) request(ctx context.Context, w *galaxy.Wormhole, method, path string, body, result interface{}) error {
	endpoint := strings.TrimRight(w.BaseURI, "/") + path
	user, password := w.Credentials()

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
attempts:
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if c.recorder != nil {
			c.recorder.RecordRateLimitWait(w.Name, time.Since(waitStart).Seconds())
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth(user, password)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.record(w.Name, method, 0, start)
			lastErr = &retryableError{message: fmt.Errorf("network error: %w", err).Error()}
			if !c.backoff(ctx, w.Name, method, "network", attempt, 0) {
				break attempts
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.record(w.Name, method, resp.StatusCode, start)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			var retryAfter time.Duration
			if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
			lastErr = &retryableError{message: "rate limited (429)", retryAfter: retryAfter}
			if !c.backoff(ctx, w.Name, method, "429", attempt, retryAfter) {
				break attempts
			}
			continue
		case resp.StatusCode >= 500:
			lastErr = &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
			if !c.backoff(ctx, w.Name, method, strconv.Itoa(resp.StatusCode), attempt, 0) {
				break attempts
			}
			continue
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return NewRemoteError(resp.StatusCode, respBody)
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		return nil
	}

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	}
	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// backoff sleeps before the next attempt and reports whether there is one
func (c *ShardClient) backoff(ctx context.Context, shard, method, reason string, attempt int, retryAfter time.Duration) bool {
	if attempt >= c.maxRetries || ctx.Err() != nil {
		return false
	}
	if c.recorder != nil {
		c.recorder.RecordAPIRetry(shard, method, reason)
	}
	delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
	if retryAfter > 0 {
		delay = retryAfter
	}
	c.clock.Sleep(delay)
	return true
}

func (c *ShardClient) record(shard, method string, status int, start time.Time) {
	if c.recorder != nil {
		c.recorder.RecordAPIRequest(shard, method, status, time.Since(start).Seconds())
	}
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
