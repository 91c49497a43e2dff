package calculator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrBadLength = errors.New("unrecognized length")

var (
	feetInchesRe = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s*(?:feet|foot|ft|'|′)\s*(\d+(?:[.,]\d+)?)\s*(?:inches|inch|in|"|″)?$`)
	singleRe     = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s*(feet|foot|ft|inches|inch|in|cm|meters|meter|m|'|′|"|″)?$`)
)

var unitAliases = map[string]Unit{
	"feet":   UnitFeet,
	"foot":   UnitFeet,
	"ft":     UnitFeet,
	"'":      UnitFeet,
	"′":      UnitFeet,
	"inches": UnitInches,
	"inch":   UnitInches,
	"in":     UnitInches,
	`"`:      UnitInches,
	"″":      UnitInches,
	"cm":     UnitCentimeters,
	"meters": UnitMeters,
	"meter":  UnitMeters,
	"m":      UnitMeters,
}

// ParseLength reads a user-typed length and returns it in feet. Bare numbers
// are taken in defaultUnit.
//
//	8, 8.5, 8'6", 8ft 6in, 96in, 240cm, 2.4 m
func ParseLength(text string, defaultUnit Unit) (float64, error) {
	text = strings.TrimSpace(text)

	if m := feetInchesRe.FindStringSubmatch(text); m != nil {
		ft, err := parseNumber(m[1])
		if err != nil {
			return 0, err
		}
		in, err := parseNumber(m[2])
		if err != nil {
			return 0, err
		}
		if in >= 12 {
			return 0, fmt.Errorf("%w: %q has %g inches", ErrBadLength, text, in)
		}
		return positive(text, ft+in/12)
	}

	m := singleRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, text)
	}
	v, err := parseNumber(m[1])
	if err != nil {
		return 0, err
	}
	unit := defaultUnit
	if m[2] != "" {
		unit = unitAliases[strings.ToLower(m[2])]
	}
	return positive(text, ConvertUnits(v, unit, UnitFeet))
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, s)
	}
	return v, nil
}

func positive(text string, v float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrBadLength, text)
	}
	return v, nil
}
