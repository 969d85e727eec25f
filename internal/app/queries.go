package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"travel_advisor/internal/adapters/observability"
	"travel_advisor/internal/domain"
	"travel_advisor/internal/recommend"
)

const catalogKey = "catalog:v1"

const enrichWorkers = 4

type QueryConfig struct {
	CacheTTL      time.Duration
	FallbackImage string
	BudgetFilter  bool
}

// QueryService answers recommendation requests: it loads a catalog snapshot,
// runs the ranking core and attaches an image URL to every record.
type QueryService struct {
	repo   domain.DestinationRepository
	cache  domain.Cache
	images domain.ImageSearcher
	rec    *recommend.Recommender
	cfg    QueryConfig
}

// NewQueryService wires the service. cache and images may be nil.
func NewQueryService(r domain.DestinationRepository, c domain.Cache, img domain.ImageSearcher, cfg QueryConfig) *QueryService {
	return &QueryService{
		repo:   r,
		cache:  c,
		images: img,
		rec:    recommend.New(recommend.Options{BudgetFilter: cfg.BudgetFilter}),
		cfg:    cfg,
	}
}

// Recommend returns at most topN enriched records. domain.ErrEmptyCatalog and
// domain.ErrNoMatchFound are returned unwrapped so callers can branch on them.
func (s *QueryService) Recommend(ctx context.Context, p domain.PreferenceSet, topN int) ([]domain.Recommendation, error) {
	if bad := p.Unrecognized(); len(bad) > 0 {
		log.Warn().Err(domain.ErrInvalidPreference).Strs("fields", bad).Msg("ranking with unrecognized preference values")
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		observability.ObserveRecommendation("error")
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	recs, err := s.rec.Recommend(catalog, p, topN)
	switch {
	case errors.Is(err, domain.ErrEmptyCatalog):
		observability.ObserveRecommendation("empty_catalog")
		return nil, err
	case errors.Is(err, domain.ErrNoMatchFound):
		observability.ObserveRecommendation("no_match")
		return nil, err
	case err != nil:
		observability.ObserveRecommendation("error")
		return nil, err
	}

	s.enrich(ctx, recs)
	observability.ObserveRecommendation("ok")
	return recs, nil
}

// Catalog returns the destination snapshot, from cache when possible.
// Empty catalogs are never cached so a fresh seed is seen immediately.
func (s *QueryService) Catalog(ctx context.Context) ([]domain.Destination, error) {
	var ds []domain.Destination
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, catalogKey, &ds)
		if err != nil {
			log.Warn().Err(err).Str("key", catalogKey).Msg("catalog cache read failed")
		}
		if ok && err == nil && len(ds) > 0 {
			return ds, nil
		}
	}

	ds, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(ds) > 0 {
		if err := s.cache.Set(ctx, catalogKey, ds, int(s.cfg.CacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", catalogKey).Msg("catalog cache write failed")
		}
	}
	return ds, nil
}

// enrich resolves ImageURL for each record concurrently. It never fails;
// lookups that do not produce a URL use the fallback image.
func (s *QueryService) enrich(ctx context.Context, recs []domain.Recommendation) {
	var g errgroup.Group
	g.SetLimit(enrichWorkers)
	for i := range recs {
		g.Go(func() error {
			recs[i].ImageURL = s.imageURL(ctx, recs[i].ImageQuery)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *QueryService) imageURL(ctx context.Context, query string) string {
	if s.images == nil || query == "" {
		return s.cfg.FallbackImage
	}

	sum := sha1.Sum([]byte(query))
	key := "image:" + hex.EncodeToString(sum[:])
	if s.cache != nil {
		var cached string
		if ok, _ := s.cache.Get(ctx, key, &cached); ok && cached != "" {
			return cached
		}
	}

	u, err := s.images.SearchImage(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("image lookup failed; using fallback")
		return s.cfg.FallbackImage
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, u, int(s.cfg.CacheTTL.Seconds()))
	}
	return u
}
