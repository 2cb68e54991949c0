package models

import (
	"regexp"
	"strconv"
	"strings"
)

// FrequencyKind tags the parsed variant of a habit frequency.
type FrequencyKind string

const (
	FrequencyUnknown  FrequencyKind = ""
	FrequencyDaily    FrequencyKind = "daily"
	FrequencyWeekdays FrequencyKind = "weekdays"
	FrequencyWeekends FrequencyKind = "weekends"
	FrequencyWeekly   FrequencyKind = "weekly"
	FrequencyMonthly  FrequencyKind = "monthly"
	FrequencyCustom   FrequencyKind = "custom"
)

// Units for custom frequencies.
const (
	FrequencyUnitWeek  = "week"
	FrequencyUnitMonth = "month"
)

var customFrequencyRegex = regexp.MustCompile(`(?i)^(\d+)\s+times?\s+per\s+(week|month)$`)

// FrequencySpec is the parsed form of a habit's frequency. It is built once
// when a habit is created or edited and stored alongside the habit, so the
// raw string is never re-parsed at read time.
type FrequencySpec struct {
	Kind  FrequencyKind `bson:"kind" json:"kind"`
	Times int           `bson:"times,omitempty" json:"times,omitempty"` // custom only
	Unit  string        `bson:"unit,omitempty" json:"unit,omitempty"`   // "week" or "month", custom only
	Raw   string        `bson:"raw" json:"raw"`                         // original user-facing label
}

// ParseFrequency turns a human-readable frequency label into a FrequencySpec.
// Unrecognized input yields FrequencyUnknown, which resolves to a target of
// zero everywhere downstream; parsing never fails.
func ParseFrequency(raw string) FrequencySpec {
	trimmed := strings.TrimSpace(raw)
	spec := FrequencySpec{Raw: trimmed}

	switch strings.ToLower(trimmed) {
	case "daily":
		spec.Kind = FrequencyDaily
	case "weekdays":
		spec.Kind = FrequencyWeekdays
	case "weekends":
		spec.Kind = FrequencyWeekends
	case "weekly":
		spec.Kind = FrequencyWeekly
	case "monthly":
		spec.Kind = FrequencyMonthly
	default:
		match := customFrequencyRegex.FindStringSubmatch(trimmed)
		if match == nil {
			return spec
		}
		times, err := strconv.Atoi(match[1])
		if err != nil || times <= 0 {
			return spec
		}
		spec.Kind = FrequencyCustom
		spec.Times = times
		spec.Unit = strings.ToLower(match[2])
	}

	return spec
}

// IsRecognized reports whether the spec carries a usable frequency rule.
func (s FrequencySpec) IsRecognized() bool {
	return s.Kind != FrequencyUnknown
}
