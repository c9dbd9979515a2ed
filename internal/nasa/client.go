// Package nasa is the outbound client for api.nasa.gov and the companion
// public APIs (EONET natural events, open-notify ISS telemetry).
//
// Each Client owns its pacing limiter and one circuit breaker per upstream
// host; two clients never share state.
package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/guttosm/astropulse/internal/logger"
	"github.com/guttosm/astropulse/internal/metrics"
)

const (
	DefaultBaseURL           = "https://api.nasa.gov"
	DefaultEONETBaseURL      = "https://eonet.gsfc.nasa.gov/api/v3"
	DefaultOpenNotifyBaseURL = "http://api.open-notify.org"

	maxBodyBytes = 16 << 20
)

// Config holds client settings. Zero values fall back to sane defaults.
type Config struct {
	APIKey            string
	BaseURL           string
	EONETBaseURL      string
	OpenNotifyBaseURL string
	Timeout           time.Duration
	// MinInterval is the minimum spacing between two upstream calls issued
	// by this client.
	MinInterval  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Breaker names, also used as the breaker-state metric label.
const (
	upstreamNASA       = "nasa-api"
	upstreamEONET      = "eonet"
	upstreamOpenNotify = "open-notify"
)

// upstream is one remote host with its own circuit breaker.
type upstream struct {
	name    string
	base    string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newUpstream(name, base string) *upstream {
	return &upstream{name: name, base: base, breaker: newBreaker(name)}
}

// Client talks to the upstream APIs.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter

	nasaAPI    *upstream
	eonet      *upstream
	openNotify *upstream
}

// NewClient builds a Client with its own limiter and per-host breakers.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = "DEMO_KEY"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.EONETBaseURL == "" {
		cfg.EONETBaseURL = DefaultEONETBaseURL
	}
	if cfg.OpenNotifyBaseURL == "" {
		cfg.OpenNotifyBaseURL = DefaultOpenNotifyBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		nasaAPI:    newUpstream(upstreamNASA, cfg.BaseURL),
		eonet:      newUpstream(upstreamEONET, cfg.EONETBaseURL),
		openNotify: newUpstream(upstreamOpenNotify, cfg.OpenNotifyBaseURL),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Client errors and rate limiting say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var fe *FetchError
			if errors.As(err, &fe) {
				switch fe.Kind {
				case KindRateLimited, KindMalformed:
					return true
				case KindUpstreamStatus:
					return fe.StatusCode < 500
				}
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// getJSON issues a GET against up.base+path through up's breaker and decodes
// the JSON body into out. The api_key parameter is added when withKey is set.
func (c *Client) getJSON(ctx context.Context, endpoint string, up *upstream, path string, params url.Values, withKey bool, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if withKey {
		params.Set("api_key", c.cfg.APIKey)
	}
	target := strings.TrimRight(up.base, "/") + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	start := time.Now()
	body, err := up.breaker.Execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, endpoint, target)
	})
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &FetchError{Kind: KindCircuitOpen, Endpoint: endpoint, Err: err}
		}
		var fe *FetchError
		if errors.As(err, &fe) {
			metrics.UpstreamRequests.WithLabelValues(endpoint, string(fe.Kind)).Inc()
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, string(KindMalformed)).Inc()
		return malformed(endpoint, "decode response: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// doWithRetry performs the request, retrying network failures and 5xx
// responses up to MaxRetries times with linear backoff.
func (c *Client) doWithRetry(ctx context.Context, endpoint, target string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.cfg.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, classify(endpoint, ctx.Err())
			case <-time.After(wait):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classify(endpoint, err)
		}

		body, err := c.do(ctx, endpoint, target)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var fe *FetchError
		if !errors.As(err, &fe) || !retryable(fe) || ctx.Err() != nil {
			return nil, err
		}
		logger.L().Debug().Str("endpoint", endpoint).Int("attempt", attempt+1).Err(err).Msg("upstream call failed, retrying")
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Endpoint: endpoint, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(endpoint, err)
	}
	defer resp.Body.Close()

	logger.L().Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream call")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, classify(endpoint, fmt.Errorf("reading response body: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, malformed(endpoint, "response exceeds %d byte limit", maxBodyBytes)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &FetchError{Kind: KindRateLimited, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New(upstreamMessage(body, "rate limit exceeded"))}
	case resp.StatusCode >= 300:
		return nil, &FetchError{Kind: KindUpstreamStatus, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New(upstreamMessage(body, http.StatusText(resp.StatusCode)))}
	}
	return body, nil
}

func retryable(fe *FetchError) bool {
	switch fe.Kind {
	case KindNetwork, KindTimeout:
		return true
	case KindUpstreamStatus:
		return fe.StatusCode >= 500
	}
	return false
}

// classify maps transport errors to a FetchError kind.
func classify(endpoint string, err error) *FetchError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &FetchError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
}

// upstreamMessage extracts a human readable message from an api.nasa.gov
// error body, falling back to def.
func upstreamMessage(body []byte, def string) string {
	var payload struct {
		Msg   string `json:"msg"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Msg != "" {
			return payload.Msg
		}
	}
	return def
}
