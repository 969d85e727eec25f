package domain

// TravelStyle is the main purpose of a trip.
type TravelStyle string

const (
	StyleRest          TravelStyle = "rest"
	StyleCulture       TravelStyle = "culture"
	StyleAdventure     TravelStyle = "adventure"
	StyleEntertainment TravelStyle = "entertainment"
)

// TravelStyles is the closed list of recognized styles.
var TravelStyles = []TravelStyle{StyleRest, StyleCulture, StyleAdventure, StyleEntertainment}

func (s TravelStyle) Known() bool { return oneOf(s, TravelStyles) }

// Environment is the preferred surroundings.
type Environment string

const (
	EnvBeach  Environment = "beach"
	EnvCity   Environment = "city"
	EnvNature Environment = "nature"
	EnvExotic Environment = "exotic"
)

var Environments = []Environment{EnvBeach, EnvCity, EnvNature, EnvExotic}

func (e Environment) Known() bool { return oneOf(e, Environments) }

// Duration is a trip-length bucket.
type Duration string

const (
	DurationWeekend  Duration = "weekend"
	DurationOneWeek  Duration = "one_week"
	DurationTwoWeeks Duration = "two_weeks"
)

var Durations = []Duration{DurationWeekend, DurationOneWeek, DurationTwoWeeks}

func (d Duration) Known() bool { return oneOf(d, Durations) }

// GroupType describes who is travelling.
type GroupType string

const (
	GroupSolo    GroupType = "solo"
	GroupCouple  GroupType = "couple"
	GroupFamily  GroupType = "family"
	GroupFriends GroupType = "friends"
)

var GroupTypes = []GroupType{GroupSolo, GroupCouple, GroupFamily, GroupFriends}

func (g GroupType) Known() bool { return oneOf(g, GroupTypes) }

func oneOf[T comparable](v T, all []T) bool {
	for _, a := range all {
		if a == v {
			return true
		}
	}
	return false
}
