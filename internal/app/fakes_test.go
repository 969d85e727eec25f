package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"travel_advisor/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	ds       []domain.Destination
	listErr  error
	lists    int
	upserted []domain.Destination
}

func (f *fakeRepo) UpsertDestinations(ctx context.Context, ds []domain.Destination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, ds...)
	return nil
}
func (f *fakeRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Destination(nil), f.ds...), nil
}
func (f *fakeRepo) CountDestinations(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ds), nil
}

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeImages struct {
	mu      sync.Mutex
	urls    map[string]string
	queries []string
}

var errNoImage = errors.New("no image")

func (f *fakeImages) SearchImage(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if u, ok := f.urls[query]; ok {
		return u, nil
	}
	return "", errNoImage
}

// fakePlaces answers by (categories, lang); every point gets the same features.
type fakePlaces struct {
	mu    sync.Mutex
	resp  map[string][]map[string]any
	err   error
	calls int
}

func (f *fakePlaces) SearchPlaces(ctx context.Context, q domain.PlacesQuery) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp[q.Categories+"|"+q.Lang], nil
}

func nice() domain.Destination {
	return domain.Destination{
		ID:            "nice",
		LocationName:  "Nicea",
		CountryName:   "Francja",
		CountryNameEn: "France",
		TravelStyles:  domain.NewSet(domain.StyleRest),
		Environments:  domain.NewSet(domain.EnvBeach),
		Durations:     domain.NewSet(domain.DurationOneWeek),
		GroupTypes:    domain.NewSet(domain.GroupCouple),
		Descriptor:    "Discover Nicea in Francja",
	}
}

func restBeach() domain.PreferenceSet {
	return domain.PreferenceSet{
		Budget:      5000,
		TravelStyle: domain.StyleRest,
		Environment: domain.EnvBeach,
		Duration:    domain.DurationOneWeek,
		GroupType:   domain.GroupCouple,
	}
}
