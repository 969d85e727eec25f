package recommend

import "travel_advisor/internal/domain"

// Per-dimension weights. Budget is deliberately absent.
const (
	WeightTravelStyle = 2
	WeightEnvironment = 2
	WeightDuration    = 1
	WeightGroupType   = 1

	MaxScore = WeightTravelStyle + WeightEnvironment + WeightDuration + WeightGroupType
)

// Score returns the additive match score of d against p, in [0, MaxScore].
// Unrecognized preference values never equal a catalog tag and simply add nothing.
func Score(d domain.Destination, p domain.PreferenceSet) int {
	score := 0
	if d.TravelStyles.Has(p.TravelStyle) {
		score += WeightTravelStyle
	}
	if d.Environments.Has(p.Environment) {
		score += WeightEnvironment
	}
	if d.Durations.Has(p.Duration) {
		score += WeightDuration
	}
	if d.GroupTypes.Has(p.GroupType) {
		score += WeightGroupType
	}
	return score
}
