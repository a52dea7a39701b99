package census

// Transform reshapes a bag of records into a Document. Record order only
// matters when two records share a destination; the later one wins.
func Transform(records []Record) Document {
	doc := NewDocument()
	var under5, under18, over65 *float64

	for _, rec := range records {
		v := ParseNumber(rec.Value)
		d := Classify(rec.Label)

		switch d.Slot {
		case SlotCensus2010:
			doc.PopulationCensus.Y2010 = v
		case SlotCensus2020:
			doc.PopulationCensus.Y2020 = v
		case SlotEstimate2023:
			doc.PopulationEstimates.Y2023 = v
		case SlotEstimate2024:
			doc.PopulationEstimates.Y2024 = v
		case SlotChange2023:
			doc.PopulationChange.Y2023 = v
		case SlotChange2024:
			doc.PopulationChange.Y2024 = v
		case SlotAgeUnder5:
			under5 = v
		case SlotAgeUnder18:
			under18 = v
		case SlotAgeOver65:
			over65 = v
		case SlotRace:
			doc.RaceDistribution[d.Key] = v
		default:
			doc.Miscellaneous.Bucket(d.Bucket)[NormalizeKey(rec.Label)] = v
		}
	}

	doc.AgeDistribution = ageDistribution(orZero(under5), orZero(under18), orZero(over65))
	return doc
}

func ageDistribution(under5, under18, over65 float64) AgeDistribution {
	a := AgeDistribution{Under5: under5, Under18: under18, Over65: over65}
	if total := under5 + under18 + over65; total <= 100 {
		a.Other = 100 - total
	}
	return a
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Tally counts how many records are routed to each destination.
func Tally(records []Record) map[Destination]int {
	out := make(map[Destination]int)
	for _, rec := range records {
		out[Classify(rec.Label)]++
	}
	return out
}
