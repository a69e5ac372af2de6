package models

import "fmt"

// StatType identifies which statistical category a projection targets
type StatType string

const (
	StatPoints   StatType = "points"
	StatRebounds StatType = "rebounds"
	StatAssists  StatType = "assists"
)

// AllStatTypes lists every supported stat type in canonical order
func AllStatTypes() []StatType {
	return []StatType{StatPoints, StatRebounds, StatAssists}
}

// ParseStatType validates and converts a string to a StatType
func ParseStatType(s string) (StatType, error) {
	switch StatType(s) {
	case StatPoints, StatRebounds, StatAssists:
		return StatType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatType, s)
}

// IsValid reports whether the stat type is one of the supported categories
func (s StatType) IsValid() bool {
	switch s {
	case StatPoints, StatRebounds, StatAssists:
		return true
	}
	return false
}

// String returns the stat type as a plain string
func (s StatType) String() string {
	return string(s)
}
