package unsplash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"travel_advisor/internal/adapters/outbound"
)

// ErrNoImage means the search succeeded but returned no photo.
var ErrNoImage = errors.New("unsplash: no image for query")

type BreakerConfig struct {
	FailureThreshold uint32
	Timeout          time.Duration
}

var DefaultBreaker = BreakerConfig{FailureThreshold: 5, Timeout: 30 * time.Second}

// Client resolves search queries to landscape photo URLs. Calls go through a
// circuit breaker so a failing upstream does not add latency to every request.
type Client struct {
	base string
	http *outbound.Client
	cb   *gobreaker.CircuitBreaker[string]
}

func New(base, accessKey string, rps int, bc BreakerConfig) (*Client, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("access key is required")
	}
	h := http.Header{}
	h.Set("Authorization", "Client-ID "+accessKey)
	h.Set("Accept-Version", "v1")

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "unsplash",
		Timeout: bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bc.FailureThreshold
		},
		// an empty result set is a valid answer, and a caller giving up says
		// nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoImage) ||
				errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
	return &Client{base: base, http: outbound.New("unsplash", rps, h), cb: cb}, nil
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	return c.cb.Execute(func() (string, error) {
		v := url.Values{}
		v.Set("query", query)
		v.Set("per_page", "1")
		v.Set("orientation", "landscape")

		var sr searchResponse
		if err := c.http.GetJSON(ctx, "search_photos", c.base+"/search/photos?"+v.Encode(), &sr); err != nil {
			return "", err
		}
		if len(sr.Results) == 0 || sr.Results[0].URLs.Regular == "" {
			return "", ErrNoImage
		}
		return sr.Results[0].URLs.Regular, nil
	})
}

// State reports the breaker state (closed, half-open, open).
func (c *Client) State() string { return c.cb.State().String() }
