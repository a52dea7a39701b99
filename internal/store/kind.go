package store

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects which record directory an identifier is resolved against.
type Kind string

const (
	KindState Kind = "state"
	KindCity  Kind = "city"
)

var reStateCode = regexp.MustCompile(`^[A-Za-z]{2}$`)

// KindOf classifies an identifier: two ASCII letters name a state (postal
// code), anything else names a city.
func KindOf(identifier string) Kind {
	if reStateCode.MatchString(identifier) {
		return KindState
	}
	return KindCity
}

// ParseKind accepts the singular or plural form used by the list endpoints.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "state", "states":
		return KindState, nil
	case "city", "cities":
		return KindCity, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}
