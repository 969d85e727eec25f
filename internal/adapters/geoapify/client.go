package geoapify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"travel_advisor/internal/adapters/outbound"
	"travel_advisor/internal/domain"
)

// Client talks to the Geoapify Places API.
type Client struct {
	base string
	key  string
	http *outbound.Client
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &Client{base: base, key: key, http: outbound.New("geoapify", rps, nil)}, nil
}

type featureCollection struct {
	Features []struct {
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

// SearchPlaces returns the properties object of every feature in the response.
func (c *Client) SearchPlaces(ctx context.Context, q domain.PlacesQuery) ([]map[string]any, error) {
	var fc featureCollection
	if err := c.http.GetJSON(ctx, "places", c.placesURL(q), &fc); err != nil {
		return nil, fmt.Errorf("geoapify places %q: %w", q.Categories, err)
	}
	out := make([]map[string]any, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Properties != nil {
			out = append(out, f.Properties)
		}
	}
	return out, nil
}

func (c *Client) placesURL(q domain.PlacesQuery) string {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	v := url.Values{}
	v.Set("categories", q.Categories)
	v.Set("limit", strconv.Itoa(limit))
	v.Set("apiKey", c.key)
	lon := strconv.FormatFloat(q.Lon, 'f', -1, 64)
	lat := strconv.FormatFloat(q.Lat, 'f', -1, 64)
	if q.Circle {
		v.Set("filter", fmt.Sprintf("circle:%s,%s,%d", lon, lat, q.RadiusM))
	} else {
		v.Set("bias", fmt.Sprintf("proximity:%s,%s", lon, lat))
	}
	if q.Lang != "" {
		v.Set("lang", q.Lang)
	}
	return c.base + "/places?" + v.Encode()
}
