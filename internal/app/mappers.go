package app

import (
	"fmt"
	"strings"

	"travel_advisor/internal/domain"
)

// Geoapify properties paths, most specific first.
var placeAliases = map[string][]string{
	"name":    {"name", "city"},
	"name_en": {"name_international.en", "datasource.raw.name:en"},
	"country": {"country"},
	"id":      {"place_id"},
}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the trimmed string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstAlias returns the first non-empty string for a named alias set.
func firstAlias(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	for _, p := range placeAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// mapPlace turns a local-language feature (and, when found, the same feature
// fetched in English) into a catalog entry tagged by profile. Features without
// a local name or country are dropped.
func mapPlace(p SeedProfile, local, en map[string]any) (domain.Destination, bool) {
	name := firstAlias(local, "name")
	country := firstAlias(local, "country")
	if name == "" || country == "" {
		return domain.Destination{}, false
	}

	nameEn := firstAlias(en, "name")
	if nameEn == "" {
		nameEn = firstAlias(local, "name_en")
	}

	return domain.Destination{
		LocationName:   name,
		CountryName:    country,
		LocationNameEn: nameEn,
		CountryNameEn:  firstAlias(en, "country"),
		TravelStyles:   domain.NewSet(p.TravelStyles.Sorted()...),
		Environments:   domain.NewSet(p.Environments.Sorted()...),
		Durations:      domain.NewSet(p.Durations.Sorted()...),
		GroupTypes:     domain.NewSet(p.GroupTypes.Sorted()...),
		Descriptor:     fmt.Sprintf("Discover %s in %s", name, country),
	}, true
}

// dedupeByLocation keeps the first entry per local location name.
func dedupeByLocation(in []domain.Destination) []domain.Destination {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Destination, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d.LocationName]; ok {
			continue
		}
		seen[d.LocationName] = struct{}{}
		out = append(out, d)
	}
	return out
}
