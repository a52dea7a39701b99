package census

import (
	"math"
	"strconv"
	"strings"
)

// Sentinel tokens the Census Bureau publishes in place of a number:
// X (not applicable), NA (not available), S (suppressed, not significant).
var sentinels = map[string]struct{}{
	"X":  {},
	"NA": {},
	"S":  {},
}

// ParseNumber converts a raw value into a number, or nil when the value is
// empty, a sentinel, or not a finite decimal. Thousands separators are
// ignored.
func ParseNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}
	if _, ok := sentinels[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return nil
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
