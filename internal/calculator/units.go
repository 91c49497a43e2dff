package calculator

import "fmt"

type Unit string

const (
	UnitFeet        Unit = "ft"
	UnitInches      Unit = "in"
	UnitCentimeters Unit = "cm"
	UnitMeters      Unit = "m"
)

var Units = []Unit{UnitFeet, UnitInches, UnitCentimeters, UnitMeters}

// Conversion factors through feet.
var (
	toFeet = map[Unit]float64{
		UnitFeet:        1,
		UnitInches:      1.0 / 12,
		UnitCentimeters: 1 / 30.48,
		UnitMeters:      3.28084,
	}
	fromFeet = map[Unit]float64{
		UnitFeet:        1,
		UnitInches:      12,
		UnitCentimeters: 30.48,
		UnitMeters:      0.3048,
	}
)

func (u Unit) Valid() bool {
	_, ok := toFeet[u]
	return ok
}

// ConvertUnits converts value between units. An unrecognized unit name
// converts with factor 1, so a typo passes the value through unchanged.
func ConvertUnits(value float64, from, to Unit) float64 {
	inFeet := value * factor(toFeet, from)
	return inFeet * factor(fromFeet, to)
}

// ConvertUnitsStrict is ConvertUnits that rejects unknown unit names.
func ConvertUnitsStrict(value float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: unit %q", ErrUnknownCategory, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: unit %q", ErrUnknownCategory, to)
	}
	return ConvertUnits(value, from, to), nil
}

func factor(table map[Unit]float64, u Unit) float64 {
	if f, ok := table[u]; ok {
		return f
	}
	return 1
}
