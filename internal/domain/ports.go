package domain

import "context"

type DestinationRepository interface {
	// Write paths
	UpsertDestinations(ctx context.Context, ds []Destination) error

	// Read paths
	ListDestinations(ctx context.Context) ([]Destination, error)
	CountDestinations(ctx context.Context) (int, error)
}

// PlacesQuery is one lookup against the places provider.
type PlacesQuery struct {
	Categories string
	Lat, Lon   float64
	RadiusM    int
	Lang       string
	Limit      int

	// Circle restricts results to RadiusM around the point; otherwise the
	// point only biases the ordering.
	Circle bool
}

type PlacesClient interface {
	SearchPlaces(ctx context.Context, q PlacesQuery) ([]map[string]any, error)
}

type ImageSearcher interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
