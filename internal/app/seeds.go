package app

import "travel_advisor/internal/domain"

type SeedPoint struct {
	Name     string
	Lat, Lon float64
}

// SeedProfile is one kind of catalog entry: which Geoapify categories to
// query around which points, and which tags the resulting places get.
type SeedProfile struct {
	Name       string
	Categories []string
	RadiusM    int
	Points     []SeedPoint

	// Circle restricts results to RadiusM; otherwise the point is a bias only.
	Circle bool

	TravelStyles domain.Set[domain.TravelStyle]
	Environments domain.Set[domain.Environment]
	Durations    domain.Set[domain.Duration]
	GroupTypes   domain.Set[domain.GroupType]

	// MinBudget range handed to the BudgetGenerator, per person.
	BudgetLow, BudgetHigh int
}

var DefaultSeedProfiles = []SeedProfile{
	{
		Name:       "beach",
		Categories: []string{"beach.beach_resort,beach"},
		RadiusM:    500000,
		Circle:     true,
		Points: []SeedPoint{
			{Name: "Turkish Riviera", Lat: 36.8969, Lon: 30.7133},
			{Name: "Greek Islands", Lat: 36.4335, Lon: 25.4323},
			{Name: "Algarve Coast, Portugal", Lat: 37.0179, Lon: -8.9922},
			{Name: "Costa del Sol, Spain", Lat: 36.7213, Lon: -4.4214},
			{Name: "Phuket, Thailand", Lat: 7.8804, Lon: 98.3923},
		},
		TravelStyles: domain.NewSet(domain.StyleRest),
		Environments: domain.NewSet(domain.EnvBeach),
		Durations:    domain.NewSet(domain.DurationOneWeek, domain.DurationTwoWeeks),
		GroupTypes:   domain.NewSet(domain.GroupCouple, domain.GroupFamily, domain.GroupFriends),
		BudgetLow:    2500,
		BudgetHigh:   8000,
	},
	{
		Name:       "city",
		Categories: []string{"tourism.sights"},
		RadiusM:    800000,
		Points: []SeedPoint{
			{Name: "Prague, Czechia", Lat: 50.0755, Lon: 14.4378},
			{Name: "Rome, Italy", Lat: 41.9028, Lon: 12.4964},
			{Name: "Paris, France", Lat: 48.8566, Lon: 2.3522},
			{Name: "Lisbon, Portugal", Lat: 38.7223, Lon: -9.1393},
			{Name: "Tokyo, Japan", Lat: 35.6895, Lon: 139.6917},
		},
		TravelStyles: domain.NewSet(domain.StyleCulture, domain.StyleEntertainment),
		Environments: domain.NewSet(domain.EnvCity),
		Durations:    domain.NewSet(domain.DurationWeekend, domain.DurationOneWeek),
		GroupTypes:   domain.NewSet(domain.GroupSolo, domain.GroupCouple, domain.GroupFriends),
		BudgetLow:    1500,
		BudgetHigh:   6000,
	},
	{
		Name:       "nature",
		Categories: []string{"leisure.park,tourism.attraction.natural", "leisure.park", "tourism.attraction.natural"},
		RadiusM:    300000,
		Circle:     true,
		Points: []SeedPoint{
			{Name: "Zakopane, Poland", Lat: 49.2992, Lon: 19.9496},
			{Name: "Swiss Alps", Lat: 46.8182, Lon: 8.2275},
			{Name: "Plitvice Lakes National Park, Croatia", Lat: 44.8653, Lon: 15.5820},
			{Name: "Iceland Golden Circle", Lat: 64.2546, Lon: -21.1303},
			{Name: "Yosemite National Park, USA", Lat: 37.8651, Lon: -119.5383},
		},
		TravelStyles: domain.NewSet(domain.StyleAdventure, domain.StyleRest),
		Environments: domain.NewSet(domain.EnvNature),
		Durations:    domain.NewSet(domain.DurationWeekend, domain.DurationOneWeek, domain.DurationTwoWeeks),
		GroupTypes:   domain.NewSet(domain.GroupSolo, domain.GroupCouple, domain.GroupFamily, domain.GroupFriends),
		BudgetLow:    800,
		BudgetHigh:   5000,
	},
}
