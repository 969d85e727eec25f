package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_advisor/internal/adapters/observability"
	"travel_advisor/internal/domain"
)

type SeedConfig struct {
	Profiles  []SeedProfile
	LocalLang string
	Workers   int
	// NewID defaults to random UUIDs.
	NewID func() string
}

// SeedingService populates the destination catalog from the places provider.
// It runs offline, never on the request path.
type SeedingService struct {
	places  domain.PlacesClient
	repo    domain.DestinationRepository
	cache   domain.Cache
	budgets BudgetGenerator
	cfg     SeedConfig
}

func NewSeedingService(p domain.PlacesClient, r domain.DestinationRepository, c domain.Cache, b BudgetGenerator, cfg SeedConfig) *SeedingService {
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = DefaultSeedProfiles
	}
	if cfg.LocalLang == "" {
		cfg.LocalLang = "pl"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &SeedingService{places: p, repo: r, cache: c, budgets: b, cfg: cfg}
}

type seedTask struct {
	profile  SeedProfile
	point    SeedPoint
	category string
}

// Seed fetches, tags, dedupes and stores destinations, returning how many
// were written. A populated catalog is left alone unless force is set.
func (s *SeedingService) Seed(ctx context.Context, force bool) (int, error) {
	if !force {
		n, err := s.repo.CountDestinations(ctx)
		if err != nil {
			return 0, fmt.Errorf("count destinations: %w", err)
		}
		if n > 0 {
			log.Info().Int("existing", n).Msg("catalog already seeded; skipping")
			return 0, nil
		}
	}

	var tasks []seedTask
	for _, p := range s.cfg.Profiles {
		for _, pt := range p.Points {
			for _, cat := range p.Categories {
				tasks = append(tasks, seedTask{profile: p, point: pt, category: cat})
			}
		}
	}

	// one slot per task keeps the catalog order independent of scheduling
	results := make([][]domain.Destination, len(tasks))
	errs := make([]error, len(tasks))

	sem := semaphore.NewWeighted(int64(s.cfg.Workers))
	var wg sync.WaitGroup
	for i, t := range tasks {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int, t seedTask) {
			defer wg.Done()
			defer sem.Release(1)

			ds, err := s.fetch(ctx, t)
			if err != nil {
				log.Warn().Err(err).Str("profile", t.profile.Name).Str("point", t.point.Name).
					Str("categories", t.category).Msg("seed lookup failed")
				errs[i] = err
				return
			}
			results[i] = ds
		}(i, t)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var all []domain.Destination
	profileOf := map[string]SeedProfile{}
	for i, ds := range results {
		for _, d := range ds {
			if _, ok := profileOf[d.LocationName]; !ok {
				profileOf[d.LocationName] = tasks[i].profile
			}
		}
		all = append(all, ds...)
	}
	unique := dedupeByLocation(all)
	usable := unique[:0]
	for _, d := range unique {
		if !d.Usable() {
			log.Warn().Str("location", d.LocationName).Msg("dropping destination with empty tag set")
			continue
		}
		usable = append(usable, d)
	}
	unique = usable

	if len(unique) == 0 {
		if err := errors.Join(errs...); err != nil {
			return 0, fmt.Errorf("seeding found no destinations: %w", err)
		}
		log.Warn().Msg("seeding found no destinations")
		return 0, nil
	}

	for i := range unique {
		unique[i].ID = s.cfg.NewID()
		unique[i].MinBudget = s.budgets.MinBudget(profileOf[unique[i].LocationName])
	}

	if err := s.repo.UpsertDestinations(ctx, unique); err != nil {
		return 0, err
	}
	observability.SeededDestinations.Add(float64(len(unique)))

	if s.cache != nil {
		if err := s.cache.Del(ctx, catalogKey); err != nil {
			log.Warn().Err(err).Msg("catalog cache invalidation failed")
		}
	}
	return len(unique), nil
}

// fetch runs one lookup in the local language and, when different, again in
// English to pick up English names, joined on place id.
func (s *SeedingService) fetch(ctx context.Context, t seedTask) ([]domain.Destination, error) {
	q := domain.PlacesQuery{
		Categories: t.category,
		Lat:        t.point.Lat,
		Lon:        t.point.Lon,
		RadiusM:    t.profile.RadiusM,
		Circle:     t.profile.Circle,
		Lang:       s.cfg.LocalLang,
		Limit:      20,
	}
	local, err := s.places.SearchPlaces(ctx, q)
	if err != nil {
		return nil, err
	}

	english := map[string]map[string]any{}
	if s.cfg.LocalLang != "en" {
		q.Lang = "en"
		en, err := s.places.SearchPlaces(ctx, q)
		if err != nil {
			// local names are enough to seed; English names only improve image queries
			log.Warn().Err(err).Str("categories", t.category).Msg("english lookup failed")
		}
		for _, props := range en {
			if id := firstAlias(props, "id"); id != "" {
				english[id] = props
			}
		}
	}

	out := make([]domain.Destination, 0, len(local))
	for _, props := range local {
		var en map[string]any
		if s.cfg.LocalLang == "en" {
			en = props
		} else if id := firstAlias(props, "id"); id != "" {
			en = english[id]
		}
		if d, ok := mapPlace(t.profile, props, en); ok {
			out = append(out, d)
		}
	}
	return dedupeByLocation(out), nil
}
