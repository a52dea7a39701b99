package census

import "strings"

// Slot identifies where a record lands in a Document.
type Slot int

const (
	SlotCensus2010 Slot = iota
	SlotCensus2020
	SlotEstimate2023
	SlotEstimate2024
	SlotChange2023
	SlotChange2024
	SlotAgeUnder5
	SlotAgeUnder18
	SlotAgeOver65
	SlotRace
	SlotMisc
)

func (s Slot) String() string {
	switch s {
	case SlotCensus2010:
		return "population_census.2010"
	case SlotCensus2020:
		return "population_census.2020"
	case SlotEstimate2023:
		return "population_estimates.2023"
	case SlotEstimate2024:
		return "population_estimates.2024"
	case SlotChange2023:
		return "population_change.2023"
	case SlotChange2024:
		return "population_change.2024"
	case SlotAgeUnder5:
		return "age_distribution.under5"
	case SlotAgeUnder18:
		return "age_distribution.under18"
	case SlotAgeOver65:
		return "age_distribution.over65"
	case SlotRace:
		return "race_distribution"
	case SlotMisc:
		return "miscellaneous"
	}
	return "unknown"
}

// Bucket names a miscellaneous sub-object.
type Bucket string

const (
	BucketPopulationBase Bucket = "population_base"
	BucketDemographics   Bucket = "demographics"
	BucketHousing        Bucket = "housing"
	BucketEducation      Bucket = "education"
	BucketHealth         Bucket = "health"
	BucketLaborEconomics Bucket = "labor_economics"
	BucketBusiness       Bucket = "business"
	BucketGeographic     Bucket = "geographic"
	BucketOther          Bucket = "other"
)

// Buckets lists every miscellaneous bucket in output order.
var Buckets = []Bucket{
	BucketPopulationBase,
	BucketDemographics,
	BucketHousing,
	BucketEducation,
	BucketHealth,
	BucketLaborEconomics,
	BucketBusiness,
	BucketGeographic,
	BucketOther,
}

// Destination is the single place a record is routed to. Key is set for
// SlotRace, Bucket for SlotMisc.
type Destination struct {
	Slot   Slot
	Key    string
	Bucket Bucket
}

func (d Destination) String() string {
	switch d.Slot {
	case SlotRace:
		return d.Slot.String() + "." + d.Key
	case SlotMisc:
		return d.Slot.String() + "." + string(d.Bucket)
	}
	return d.Slot.String()
}

type rule struct {
	match func(label string) bool
	dest  Destination
}

// rules is evaluated top to bottom and the first match wins. Longer
// patterns that share a prefix with shorter ones ("White alone, not
// Hispanic" vs "White alone") must come first.
var rules = buildRules()

var raceNames = []string{
	"White alone, not Hispanic",
	"White alone",
	"Black alone",
	"American Indian and Alaska Native",
	"Asian alone",
	"Native Hawaiian",
	"Two or More Races",
	"Hispanic or Latino",
}

var bucketPatterns = []struct {
	bucket   Bucket
	patterns []string
}{
	{BucketPopulationBase, []string{
		"Population estimates base",
	}},
	{BucketDemographics, []string{
		"Female persons",
		"Veterans,",
		"Foreign-born persons",
	}},
	{BucketHousing, []string{
		"Housing Units",
		"Owner-occupied housing unit rate",
		"Median value of owner-occupied housing units",
		"Median selected monthly owner costs",
		"Median gross rent",
		"Building Permits",
		"Households,",
		"Persons per household",
		"Living in the same house",
	}},
	{BucketEducation, []string{
		"Language other than English",
		"Households with a computer",
		"Households with a broadband Internet subscription",
		"High school graduate",
		"Bachelor's degree",
	}},
	{BucketHealth, []string{
		"With a disability",
		"health insurance",
		"Persons in poverty",
	}},
	{BucketLaborEconomics, []string{
		"In civilian labor force",
		"Total accommodation and food services sales",
		"Total health care and social assistance",
		"Total transportation and warehousing",
		"Total retail sales",
		"Mean travel time to work",
		"Median households income",
		"Per capita income",
	}},
	{BucketBusiness, []string{
		"employer",
		"employment",
		"payroll",
		"firms",
	}},
	{BucketGeographic, []string{
		"Population per square mile",
		"Land area in square miles",
		"FIPS Code",
	}},
}

func buildRules() []rule {
	out := []rule{
		{containsAny("Population, Census, April 1, 2010"), Destination{Slot: SlotCensus2010}},
		{containsAny("Population, Census, April 1, 2020"), Destination{Slot: SlotCensus2020}},
		{containsAny("Population estimates, July 1, 2023"), Destination{Slot: SlotEstimate2023}},
		{containsAny("Population estimates, July 1, 2024"), Destination{Slot: SlotEstimate2024}},
		{containsAll("Population, percent change", "July 1, 2023"), Destination{Slot: SlotChange2023}},
		{containsAll("Population, percent change", "July 1, 2024"), Destination{Slot: SlotChange2024}},
		{containsAny("Persons under 5 years, percent"), Destination{Slot: SlotAgeUnder5}},
		{containsAny("Persons under 18 years, percent"), Destination{Slot: SlotAgeUnder18}},
		{containsAny("Persons 65 years and over, percent"), Destination{Slot: SlotAgeOver65}},
	}

	for _, name := range raceNames {
		out = append(out, rule{
			match: containsAny(name),
			dest:  Destination{Slot: SlotRace, Key: NormalizeKey(name)},
		})
	}

	for _, bp := range bucketPatterns {
		out = append(out, rule{
			match: containsAny(bp.patterns...),
			dest:  Destination{Slot: SlotMisc, Bucket: bp.bucket},
		})
	}

	return out
}

func containsAny(subs ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range subs {
			if strings.Contains(label, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range subs {
			if !strings.Contains(label, s) {
				return false
			}
		}
		return true
	}
}

// Classify returns the destination of a record with the given label.
// Labels matching no rule go to the "other" miscellaneous bucket.
func Classify(label string) Destination {
	for _, r := range rules {
		if r.match(label) {
			return r.dest
		}
	}
	return Destination{Slot: SlotMisc, Bucket: BucketOther}
}
