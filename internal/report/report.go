package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gingfrederik/docx"

	"censusapi/internal/census"
)

// Section is one titled group of lines in a report.
type Section struct {
	Title string
	Lines []Line
}

// Line is a single key/value row. A nil Value renders as "n/a".
type Line struct {
	Key   string
	Value *float64
}

// Sections flattens a document into report sections in output order.
func Sections(doc census.Document) []Section {
	age := doc.AgeDistribution
	out := []Section{
		{Title: "Population (Census)", Lines: []Line{
			{"2010", doc.PopulationCensus.Y2010},
			{"2020", doc.PopulationCensus.Y2020},
		}},
		{Title: "Population estimates", Lines: sparseLines(doc.PopulationEstimates)},
		{Title: "Population change", Lines: sparseLines(doc.PopulationChange)},
		{Title: "Age distribution", Lines: []Line{
			{"under5", &age.Under5},
			{"under18", &age.Under18},
			{"over65", &age.Over65},
			{"other", &age.Other},
		}},
		{Title: "Race distribution", Lines: valueLines(doc.RaceDistribution)},
	}

	for _, b := range census.Buckets {
		out = append(out, Section{
			Title: "Miscellaneous: " + string(b),
			Lines: valueLines(doc.Miscellaneous.Bucket(b)),
		})
	}
	return out
}

// Write renders doc as a Word document at path.
func Write(path, title string, doc census.Document) error {
	f := docx.NewFile()

	titleRun := f.AddParagraph().AddText(title)
	titleRun.Size(20)
	f.AddParagraph() // Spacer

	for _, s := range Sections(doc) {
		run := f.AddParagraph().AddText(s.Title)
		run.Size(16)

		if len(s.Lines) == 0 {
			run = f.AddParagraph().AddText("No data")
			run.Color("808080")
			continue
		}
		for _, l := range s.Lines {
			f.AddParagraph().AddText(fmt.Sprintf("%s: %s", l.Key, FormatValue(l.Value)))
		}
		f.AddParagraph() // Spacer
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// FormatValue renders a parsed value without trailing zeros.
func FormatValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func sparseLines(y census.EstimateYears) []Line {
	var out []Line
	if y.Y2023 != nil {
		out = append(out, Line{"2023", y.Y2023})
	}
	if y.Y2024 != nil {
		out = append(out, Line{"2024", y.Y2024})
	}
	return out
}

func valueLines(vals census.Values) []Line {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Line, 0, len(keys))
	for _, k := range keys {
		out = append(out, Line{k, vals[k]})
	}
	return out
}
