package recommend

import (
	"fmt"
	"slices"
	"strings"

	"travel_advisor/internal/domain"
)

// DefaultTopN is used when a caller passes a non-positive topN.
const DefaultTopN = 3

type Options struct {
	// BudgetFilter drops destinations whose MinBudget exceeds the user's
	// budget before ranking. Off by default.
	BudgetFilter bool
}

// Recommender ranks a catalog snapshot. It holds no state between calls.
type Recommender struct {
	opts Options
}

func New(opts Options) *Recommender {
	return &Recommender{opts: opts}
}

type scored struct {
	dest  domain.Destination
	score int
}

// Recommend returns at most topN records ordered by descending score.
// Equal scores keep their catalog order. It fails with domain.ErrEmptyCatalog
// when catalog is empty and domain.ErrNoMatchFound when nothing scores above zero.
func (r *Recommender) Recommend(catalog []domain.Destination, p domain.PreferenceSet, topN int) ([]domain.Recommendation, error) {
	if len(catalog) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	candidates := make([]scored, 0, len(catalog))
	for _, d := range catalog {
		if r.opts.BudgetFilter && d.MinBudget > p.Budget {
			continue
		}
		if s := Score(d, p); s > 0 {
			candidates = append(candidates, scored{dest: d, score: s})
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoMatchFound
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		return b.score - a.score
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	out := make([]domain.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, buildRecord(c.dest, c.score, p))
	}
	return out, nil
}

func buildRecord(d domain.Destination, score int, p domain.PreferenceSet) domain.Recommendation {
	rationale := fmt.Sprintf("This place fits your travel style ('%s') and your preferred surroundings ('%s').",
		p.TravelStyle, p.Environment)
	details := []string{
		fmt.Sprintf("Trip length: ideal for %s.", strings.ReplaceAll(string(p.Duration), "_", " ")),
		fmt.Sprintf("Ideal for travellers: %s.", p.GroupType),
		// Always affirmative; MinBudget is not compared here.
		"Budget: fits within your range.",
	}
	return domain.Recommendation{
		DestinationID: d.ID,
		Score:         score,
		Title:         fmt.Sprintf("%s, %s", d.LocationName, d.CountryName),
		Description:   d.Descriptor,
		ImageQuery:    ImageQuery(d, p),
		Rationale:     rationale,
		Details:       details,
	}
}
