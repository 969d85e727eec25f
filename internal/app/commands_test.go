package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_advisor/internal/app"
	"travel_advisor/internal/domain"
)

func beachProfile() app.SeedProfile {
	return app.SeedProfile{
		Name:         "beach",
		Categories:   []string{"beach"},
		RadiusM:      500000,
		Points:       []app.SeedPoint{{Name: "Riviera", Lat: 36.9, Lon: 30.7}, {Name: "Islands", Lat: 36.4, Lon: 25.4}},
		Circle:       true,
		TravelStyles: domain.NewSet(domain.StyleRest),
		Environments: domain.NewSet(domain.EnvBeach),
		Durations:    domain.NewSet(domain.DurationOneWeek),
		GroupTypes:   domain.NewSet(domain.GroupCouple),
		BudgetLow:    2000,
		BudgetHigh:   4000,
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestSeed_MergesEnglishNamesAndDedupes(t *testing.T) {
	places := &fakePlaces{resp: map[string][]map[string]any{
		"beach|pl": {
			{"place_id": "p1", "name": "Kemer", "country": "Turcja"},
			{"place_id": "p2", "city": "Side", "country": "Turcja"},
			{"place_id": "p3", "name": "Bez kraju"},
		},
		"beach|en": {
			{"place_id": "p1", "name": "Kemer", "country": "Turkey"},
		},
	}}
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := app.NewSeedingService(places, repo, cache, app.NewSeededBudgets(1), app.SeedConfig{
		Profiles:  []app.SeedProfile{beachProfile()},
		LocalLang: "pl",
		Workers:   2,
		NewID:     sequentialIDs(),
	})

	n, err := svc.Seed(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.upserted, 2)

	kemer := repo.upserted[0]
	assert.Equal(t, "Kemer", kemer.LocationName)
	assert.Equal(t, "Turcja", kemer.CountryName)
	assert.Equal(t, "Turkey", kemer.CountryNameEn)
	assert.Equal(t, "Discover Kemer in Turcja", kemer.Descriptor)
	assert.True(t, kemer.Usable())
	assert.Equal(t, "id-1", kemer.ID)
	assert.GreaterOrEqual(t, kemer.MinBudget, 2000)
	assert.LessOrEqual(t, kemer.MinBudget, 4000)

	side := repo.upserted[1]
	assert.Equal(t, "Side", side.LocationName)
	assert.Empty(t, side.CountryNameEn)

	assert.Contains(t, cache.dels, "catalog:v1")
	// two points, one category, two languages
	assert.Equal(t, 4, places.calls)
}

func TestSeed_SkipsPopulatedCatalog(t *testing.T) {
	places := &fakePlaces{}
	repo := &fakeRepo{ds: []domain.Destination{nice()}}
	svc := app.NewSeedingService(places, repo, nil, app.NewSeededBudgets(1), app.SeedConfig{
		Profiles: []app.SeedProfile{beachProfile()},
	})

	n, err := svc.Seed(context.Background(), false)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, places.calls)
}

func TestSeed_ForceReseeds(t *testing.T) {
	places := &fakePlaces{resp: map[string][]map[string]any{
		"beach|en": {{"place_id": "p1", "name": "Kemer", "country": "Turkey"}},
	}}
	repo := &fakeRepo{ds: []domain.Destination{nice()}}
	svc := app.NewSeedingService(places, repo, nil, app.NewSeededBudgets(1), app.SeedConfig{
		Profiles:  []app.SeedProfile{beachProfile()},
		LocalLang: "en",
	})

	n, err := svc.Seed(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Turkey", repo.upserted[0].CountryNameEn)
	assert.Equal(t, "Kemer", repo.upserted[0].LocationNameEn)
	// English as the local language needs no second lookup
	assert.Equal(t, 2, places.calls)
}

func TestSeed_AllLookupsFail(t *testing.T) {
	boom := errors.New("unauthorized")
	svc := app.NewSeedingService(&fakePlaces{err: boom}, &fakeRepo{}, nil, app.NewSeededBudgets(1), app.SeedConfig{
		Profiles: []app.SeedProfile{beachProfile()},
	})

	_, err := svc.Seed(context.Background(), false)

	require.ErrorIs(t, err, boom)
}

func TestSeed_DropsEntriesWithEmptyTagSets(t *testing.T) {
	p := beachProfile()
	p.GroupTypes = nil
	places := &fakePlaces{resp: map[string][]map[string]any{
		"beach|en": {{"place_id": "p1", "name": "Kemer", "country": "Turkey"}},
	}}
	repo := &fakeRepo{}
	svc := app.NewSeedingService(places, repo, nil, app.NewSeededBudgets(1), app.SeedConfig{
		Profiles:  []app.SeedProfile{p},
		LocalLang: "en",
	})

	n, err := svc.Seed(context.Background(), false)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, repo.upserted)
}

func TestSeededBudgets_Deterministic(t *testing.T) {
	p := beachProfile()
	a, b := app.NewSeededBudgets(42), app.NewSeededBudgets(42)
	for i := 0; i < 20; i++ {
		va, vb := a.MinBudget(p), b.MinBudget(p)
		assert.Equal(t, va, vb)
		assert.Zero(t, va%100)
		assert.GreaterOrEqual(t, va, p.BudgetLow)
		assert.LessOrEqual(t, va, p.BudgetHigh)
	}

	p.BudgetHigh = p.BudgetLow
	assert.Equal(t, p.BudgetLow, a.MinBudget(p))
}

func TestDefaultSeedProfiles_Usable(t *testing.T) {
	require.Len(t, app.DefaultSeedProfiles, 3)
	for _, p := range app.DefaultSeedProfiles {
		assert.NotEmpty(t, p.Points, p.Name)
		assert.NotEmpty(t, p.Categories, p.Name)
		d := domain.Destination{
			TravelStyles: p.TravelStyles,
			Environments: p.Environments,
			Durations:    p.Durations,
			GroupTypes:   p.GroupTypes,
		}
		assert.True(t, d.Usable(), p.Name)
	}
}
