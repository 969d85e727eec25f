// Package outbound is the shared JSON GET client used by the third-party
// adapters: client-side rate limiting, retries on 429/5xx with Retry-After,
// jittered backoff and sentinel errors for 401/403/404.
package outbound

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"travel_advisor/internal/adapters/observability"
)

var (
	ErrNotFound     = errors.New("outbound: not found")
	ErrUnauthorized = errors.New("outbound: unauthorized")
	ErrForbidden    = errors.New("outbound: forbidden")
)

const (
	maxAttempts = 4
	baseBackoff = 200 * time.Millisecond
	errBodyMax  = 4096
)

// sentinelByStatus maps permanent client errors to their sentinels.
var sentinelByStatus = map[int]error{
	http.StatusNotFound:     ErrNotFound,
	http.StatusUnauthorized: ErrUnauthorized,
	http.StatusForbidden:    ErrForbidden,
}

type Client struct {
	service string
	hc      *http.Client
	limiter *rate.Limiter
	header  http.Header
}

// New builds a client for service (used as the metrics label). rps <= 0 means 5.
// header is sent on every request, after the defaults.
func New(service string, rps int, header http.Header) *Client {
	if rps <= 0 {
		rps = 5
	}
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", "travel-advisor/1.0")
	for k, vs := range header {
		h[k] = append([]string(nil), vs...)
	}
	return &Client{
		service: service,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		header:  h,
	}
}

// attempt is the outcome of one round trip.
type attempt struct {
	err   error
	retry bool
	wait  time.Duration // server-requested delay, 0 means use backoff
}

// GetJSON performs a GET and decodes the body into out. endpoint is a short
// stable name used for metrics, never the full URL.
func (c *Client) GetJSON(ctx context.Context, endpoint, url string, out any) error {
	var last error
	for i := 0; i < maxAttempts; i++ {
		// every attempt, retries included, spends a token
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		a := c.roundTrip(ctx, endpoint, url, out)
		if !a.retry {
			return a.err
		}
		last = a.err
		if i == maxAttempts-1 {
			break
		}

		wait := a.wait
		if wait == 0 {
			wait = backoff(i)
		}
		log.Debug().Err(a.err).Str("service", c.service).Str("endpoint", endpoint).
			Int("attempt", i+1).Dur("wait", wait).Msg("retrying outbound request")
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s %s: giving up after %d attempts: %w", c.service, endpoint, maxAttempts, last)
}

func (c *Client) roundTrip(ctx context.Context, endpoint, url string, out any) attempt {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return attempt{err: err}
	}
	req.Header = c.header.Clone()

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(c.service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return attempt{err: ctx.Err()}
		}
		return attempt{err: err, retry: true}
	}
	defer resp.Body.Close()
	observability.ObserveExternal(c.service, endpoint, resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code == http.StatusNoContent:
		return attempt{}
	case code >= 200 && code < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return attempt{err: fmt.Errorf("%s: decode %s: %w", c.service, endpoint, err)}
		}
		return attempt{}
	case sentinelByStatus[code] != nil:
		return attempt{err: sentinelByStatus[code]}
	case code == http.StatusTooManyRequests || code >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errBodyMax))
		return attempt{
			err:   fmt.Errorf("%s: remote %d", c.service, code),
			retry: true,
			wait:  retryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyMax))
		return attempt{err: fmt.Errorf("%s: bad status %d: %s", c.service, code, strings.TrimSpace(string(b)))}
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses a Retry-After value (seconds or HTTP-date). 0 if absent or invalid.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from baseBackoff per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := baseBackoff << i
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(float64(base)*0.5*float64(b[0])/255)
}
