package census

import (
	"strings"
	"unicode"
)

// NormalizeKey turns a human-readable label such as
// "Population per square mile, 2020" into "population_per_square_mile_2020".
// The result contains no whitespace, hyphens, commas or parentheses, so
// normalizing it again returns it unchanged.
func NormalizeKey(label string) string {
	s := strings.ToLower(label)
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')':
			return -1
		}
		return r
	}, s)
	s = collapseRuns(s, unicode.IsSpace)
	s = collapseRuns(s, func(r rune) bool { return r == '-' })
	return strings.TrimSpace(s)
}

// collapseRuns replaces every maximal run of runes matching pred with a
// single underscore.
func collapseRuns(s string, pred func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false

	for _, r := range s {
		if pred(r) {
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
			continue
		}
		b.WriteRune(r)
		inRun = false
	}

	return b.String()
}
