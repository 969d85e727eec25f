package domain

// Destination is one catalog entry. Local names are in the seeding language,
// the *En names feed the image query.
type Destination struct {
	ID             string           `json:"id"`
	LocationName   string           `json:"location_name"`
	CountryName    string           `json:"country_name"`
	LocationNameEn string           `json:"location_name_en,omitempty"`
	CountryNameEn  string           `json:"country_name_en,omitempty"`
	TravelStyles   Set[TravelStyle] `json:"travel_styles"`
	Environments   Set[Environment] `json:"environments"`
	Durations      Set[Duration]    `json:"durations"`
	GroupTypes     Set[GroupType]   `json:"group_types"`
	Descriptor     string           `json:"descriptor"`
	MinBudget      int              `json:"min_budget"`
}

// Usable reports whether every tag set is populated. An entry failing this
// can never score above zero.
func (d Destination) Usable() bool {
	return d.TravelStyles.Len() > 0 && d.Environments.Len() > 0 &&
		d.Durations.Len() > 0 && d.GroupTypes.Len() > 0
}

// PreferenceSet is a single request's selection. All fields are required
// upstream; the ranking core does not re-validate them.
type PreferenceSet struct {
	Budget      int
	Duration    Duration
	TravelStyle TravelStyle
	Environment Environment
	GroupType   GroupType
}

// Unrecognized lists the dimensions whose value is outside its enumeration.
func (p PreferenceSet) Unrecognized() []string {
	var out []string
	if !p.TravelStyle.Known() {
		out = append(out, "travel_style")
	}
	if !p.Environment.Known() {
		out = append(out, "environment")
	}
	if !p.Duration.Known() {
		out = append(out, "duration")
	}
	if !p.GroupType.Known() {
		out = append(out, "group_type")
	}
	return out
}

// Recommendation is a display-ready record for one selected destination.
// ImageURL is left empty by the ranking core and filled during enrichment.
type Recommendation struct {
	DestinationID string   `json:"destination_id"`
	Score         int      `json:"score"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageQuery    string   `json:"image_query"`
	ImageURL      string   `json:"image_url,omitempty"`
	Rationale     string   `json:"rationale"`
	Details       []string `json:"details"`
}
