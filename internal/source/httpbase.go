package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/intel-cli/internal/resilience"
)

// AdaptiveLimiter wraps a rate.Limiter with auto-tuning: success nudges the
// rate up 20% (to 2x initial), a 429 halves it (to initial/4).
type AdaptiveLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	initial rate.Limit
	current rate.Limit
}

// NewAdaptiveLimiter creates an adaptive limiter starting at initialRate.
func NewAdaptiveLimiter(initialRate rate.Limit, burst int) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		limiter: rate.NewLimiter(initialRate, burst),
		initial: initialRate,
		current: initialRate,
	}
}

// Wait blocks until the limiter allows an event.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// OnSuccess raises the rate by 20%, capped at 2x the initial rate.
func (a *AdaptiveLimiter) OnSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()
	next := a.current * 1.2
	if next > a.initial*2 {
		next = a.initial * 2
	}
	a.current = next
	a.limiter.SetLimit(next)
}

// OnRateLimit halves the rate after a 429, floored at initial/4.
func (a *AdaptiveLimiter) OnRateLimit() {
	a.mu.Lock()
	defer a.mu.Unlock()
	next := a.current * 0.5
	if next < a.initial/4 {
		next = a.initial / 4
	}
	a.current = next
	a.limiter.SetLimit(next)
	zap.L().Warn("adaptive rate limit: reducing rate after 429",
		zap.Float64("new_rate", float64(next)),
	)
}

// Limit returns the current rate.
func (a *AdaptiveLimiter) Limit() rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// HTTPBase is the shared transport for HTTP-backed source adapters. It
// applies rate limiting, bounded retries, and a circuit breaker so that the
// orchestrator above sees each source call as a single atomic attempt.
type HTTPBase struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *AdaptiveLimiter
	breaker *resilience.Breaker
	retry   resilience.RetryConfig
}

// HTTPBaseOptions configures an HTTPBase.
type HTTPBaseOptions struct {
	Name          string
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxRetries    int
}

// NewHTTPBase creates the shared transport for one source endpoint.
func NewHTTPBase(opts HTTPBaseOptions) *HTTPBase {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = int(opts.RatePerSecond)
		if opts.Burst < 1 {
			opts.Burst = 1
		}
	}
	retry := resilience.DefaultRetryConfig()
	if opts.MaxRetries > 0 {
		retry.MaxAttempts = opts.MaxRetries
	}
	retry.OnRetry = resilience.RetryLogger(opts.Name, "http_get")

	return &HTTPBase{
		name:    opts.Name,
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: NewAdaptiveLimiter(rate.Limit(opts.RatePerSecond), opts.Burst),
		breaker: resilience.NewBreaker(resilience.DefaultBreakerConfig()),
		retry:   retry,
	}
}

// Name returns the source identifier.
func (h *HTTPBase) Name() string { return h.name }

// GetJSON fetches baseURL+path and decodes the response into out. A non-2xx
// status is an error; transient statuses are retried within this call.
func (h *HTTPBase) GetJSON(ctx context.Context, path string, out any) error {
	body, err := resilience.DoVal(ctx, h.retry, func(ctx context.Context) ([]byte, error) {
		return resilience.CallVal(ctx, h.breaker, func(ctx context.Context) ([]byte, error) {
			return h.get(ctx, path)
		})
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "source %s: decode response", h.name)
	}
	return nil
}

func (h *HTTPBase) get(ctx context.Context, path string) ([]byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrapf(err, "source %s: rate limiter", h.name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+path, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: build request", h.name)
	}
	req.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: request", h.name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		h.limiter.OnRateLimit()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("source %s: status %d", h.name, resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	h.limiter.OnSuccess()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: read body", h.name)
	}
	return body, nil
}
