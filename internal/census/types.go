package census

// Record is a single flat statistic as published for a state or city.
type Record struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is the normalized, hierarchical view of one entity's records.
type Document struct {
	PopulationCensus    CensusYears     `json:"population_census"`
	PopulationEstimates EstimateYears   `json:"population_estimates"`
	PopulationChange    EstimateYears   `json:"population_change"`
	AgeDistribution     AgeDistribution `json:"age_distribution"`
	RaceDistribution    Values          `json:"race_distribution"`
	Miscellaneous       Miscellaneous   `json:"miscellaneous"`
}

// Values maps normalized keys to parsed values; nil marks missing data.
type Values map[string]*float64

// CensusYears always serializes both decennial counts, null when unseen.
type CensusYears struct {
	Y2010 *float64 `json:"2010"`
	Y2020 *float64 `json:"2020"`
}

// EstimateYears omits any year without a value.
type EstimateYears struct {
	Y2023 *float64 `json:"2023,omitempty"`
	Y2024 *float64 `json:"2024,omitempty"`
}

// AgeDistribution holds percentages; Other is whatever the three published
// brackets leave of 100, floored at zero.
type AgeDistribution struct {
	Under5  float64 `json:"under5"`
	Under18 float64 `json:"under18"`
	Over65  float64 `json:"over65"`
	Other   float64 `json:"other"`
}

type Miscellaneous struct {
	PopulationBase Values `json:"population_base"`
	Demographics   Values `json:"demographics"`
	Housing        Values `json:"housing"`
	Education      Values `json:"education"`
	Health         Values `json:"health"`
	LaborEconomics Values `json:"labor_economics"`
	Business       Values `json:"business"`
	Geographic     Values `json:"geographic"`
	Other          Values `json:"other"`
}

// Bucket returns the map backing b. Unknown buckets resolve to Other.
func (m *Miscellaneous) Bucket(b Bucket) Values {
	switch b {
	case BucketPopulationBase:
		return m.PopulationBase
	case BucketDemographics:
		return m.Demographics
	case BucketHousing:
		return m.Housing
	case BucketEducation:
		return m.Education
	case BucketHealth:
		return m.Health
	case BucketLaborEconomics:
		return m.LaborEconomics
	case BucketBusiness:
		return m.Business
	case BucketGeographic:
		return m.Geographic
	default:
		return m.Other
	}
}

// NewDocument returns an empty document whose maps are allocated, so every
// object serializes as {} rather than null.
func NewDocument() Document {
	return Document{
		RaceDistribution: Values{},
		Miscellaneous: Miscellaneous{
			PopulationBase: Values{},
			Demographics:   Values{},
			Housing:        Values{},
			Education:      Values{},
			Health:         Values{},
			LaborEconomics: Values{},
			Business:       Values{},
			Geographic:     Values{},
			Other:          Values{},
		},
	}
}
