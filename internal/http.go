package internal

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/time/rate"

	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// HTTPTransport sends requests to Graph and reads their bodies. It throttles
// outgoing calls client-side and pauses when Graph reports that the app is
// over its limits. It never retries.
type HTTPTransport struct {
	client *http.Client
	logger *slog.Logger

	limiter        *rate.Limiter
	mu             sync.Mutex
	forceWaitUntil time.Time
	now            func() time.Time
}

// RateLimitConfig controls how requests are throttled before reaching Graph.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 200 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 20 if zero.
	Burst int
}

const (
	DefaultRequestsPerMinute = 200
	DefaultRateLimitBurst    = 20
	SecondsPerMinute         = 60.0
	ParseFloatBitSize        = 64

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 32 << 20

	headerRetryAfter    = "Retry-After"
	headerBusinessUsage = "X-Business-Use-Case-Usage"
	keyRegainAccess     = "estimated_time_to_regain_access"
)

// NewHTTPTransport returns a transport using httpClient, or http.DefaultClient when nil.
func NewHTTPTransport(httpClient *http.Client, rateCfg *RateLimitConfig, logger *slog.Logger) *HTTPTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if rateCfg == nil {
		rateCfg = &RateLimitConfig{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &HTTPTransport{
		client:  httpClient,
		logger:  logger,
		limiter: buildLimiter(*rateCfg),
		now:     time.Now,
	}
}

// Do sends req and returns the status, headers and full body. Non-2xx statuses
// are not errors at this layer.
func (t *HTTPTransport) Do(req *http.Request) (*types.RawResponse, error) {
	redactedURL := RedactURL(req.URL)

	if err := t.waitForRateLimit(req.Context()); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "Do", URL: redactedURL, Message: "rate limit wait", Err: err}
	}

	start := t.now()
	resp, err := t.client.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, token included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactedURL
		}
		return nil, &pkgerrs.RequestError{Operation: "Do", URL: redactedURL, Message: "send request", Err: err}
	}
	defer resp.Body.Close()

	t.applyRateHeaders(resp.Header)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &pkgerrs.RequestError{Operation: "Do", URL: redactedURL, Message: "read response body", Err: err}
	}

	t.logger.LogAttrs(req.Context(), slog.LevelDebug, "graph request",
		slog.String("method", req.Method),
		slog.String("url", redactedURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", t.now().Sub(start)),
	)

	return &types.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	requestsPerMinute := cfg.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	limitPerSecond := rate.Limit(requestsPerMinute / SecondsPerMinute)
	if limitPerSecond <= 0 {
		limitPerSecond = rate.Limit(1)
	}

	return rate.NewLimiter(limitPerSecond, burst)
}

func (t *HTTPTransport) waitForRateLimit(ctx context.Context) error {
	if err := t.waitForForcedDelay(ctx); err != nil {
		return err
	}

	if t.limiter == nil {
		return nil
	}

	return t.limiter.Wait(ctx)
}

func (t *HTTPTransport) waitForForcedDelay(ctx context.Context) error {
	for {
		t.mu.Lock()
		waitUntil := t.forceWaitUntil
		t.mu.Unlock()

		if waitUntil.IsZero() {
			return nil
		}

		now := t.now()
		if !now.Before(waitUntil) {
			t.clearForcedDelay(waitUntil)
			return nil
		}

		timer := time.NewTimer(waitUntil.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ctx.Err(), "waiting for rate limit reset")
		case <-timer.C:
			t.clearForcedDelay(waitUntil)
		}
	}
}

func (t *HTTPTransport) clearForcedDelay(previous time.Time) {
	t.mu.Lock()
	if previous.Equal(t.forceWaitUntil) {
		t.forceWaitUntil = time.Time{}
	}
	t.mu.Unlock()
}

func (t *HTTPTransport) applyRateHeaders(h http.Header) {
	if retryAfter := h.Get(headerRetryAfter); retryAfter != "" {
		if seconds, err := strconv.ParseFloat(retryAfter, ParseFloatBitSize); err == nil && seconds > 0 {
			t.deferRequests(time.Duration(seconds * float64(time.Second)))
		}
	}

	if usage := h.Get(headerBusinessUsage); usage != "" {
		if minutes := regainAccessMinutes([]byte(usage)); minutes > 0 {
			t.logger.Warn("graph business use case limit reached", slog.Int64("regain_minutes", minutes))
			t.deferRequests(time.Duration(minutes) * time.Minute)
		}
	}
}

// regainAccessMinutes reads the largest estimated_time_to_regain_access from an
// X-Business-Use-Case-Usage header, which maps business ids to usage entries.
func regainAccessMinutes(header []byte) int64 {
	usage, err := jsonobj.Parse(header)
	if err != nil {
		return 0
	}

	var longest int64
	for id := range usage {
		for _, entry := range jsonobj.Elements(usage.Array(id), func(o jsonobj.Object) (*jsonobj.Object, error) {
			return &o, nil
		}) {
			if m := entry.Int64(keyRegainAccess); m > longest {
				longest = m
			}
		}
	}
	return longest
}

func (t *HTTPTransport) deferRequests(d time.Duration) {
	if d <= 0 {
		return
	}

	until := t.now().Add(d)

	t.mu.Lock()
	if until.After(t.forceWaitUntil) {
		t.forceWaitUntil = until
	}
	t.mu.Unlock()
}
