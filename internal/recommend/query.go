package recommend

import (
	"strings"

	"travel_advisor/internal/domain"
)

var styleKeywords = map[domain.TravelStyle]string{
	domain.StyleRest:          "relax, peaceful, calm",
	domain.StyleCulture:       "history, architecture, museum",
	domain.StyleAdventure:     "adventure, hiking, wild, action",
	domain.StyleEntertainment: "entertainment, city life, fun",
}

var environmentKeywords = map[domain.Environment]string{
	domain.EnvBeach:  "beach, sea, coast, sunny",
	domain.EnvCity:   "cityscape, urban",
	domain.EnvNature: "nature, landscape, mountains, forest",
	domain.EnvExotic: "exotic, tropical, jungle",
}

// ImageQuery builds the photo-search string for d: the English country name
// (or the English location name when the country is missing), then the style
// keywords, then the environment keywords.
func ImageQuery(d domain.Destination, p domain.PreferenceSet) string {
	base := strings.TrimSpace(d.CountryNameEn)
	if base == "" {
		base = strings.TrimSpace(d.LocationNameEn)
	}
	return joinNonEmpty(base, styleKeywords[p.TravelStyle], environmentKeywords[p.Environment])
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
