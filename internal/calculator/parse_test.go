package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
		unit Unit
		want float64
	}{
		{"bare feet", "8", UnitFeet, 8},
		{"decimal feet", "8.5", UnitFeet, 8.5},
		{"decimal comma", "8,5", UnitFeet, 8.5},
		{"feet and inches marks", `8'6"`, UnitFeet, 8.5},
		{"feet and inches words", "8ft 6in", UnitFeet, 8.5},
		{"feet mark only", "9'", UnitFeet, 9},
		{"inches", "96in", UnitFeet, 8},
		{"centimeters", "240cm", UnitFeet, 240 / 30.48},
		{"meters with space", "2.4 m", UnitFeet, 2.4 * 3.28084},
		{"bare number in preferred cm", "240", UnitCentimeters, 240 / 30.48},
		{"bare number in preferred inches", "30", UnitInches, 2.5},
		{"explicit unit overrides preferred", "8ft", UnitCentimeters, 8},
		{"uppercase", "8 FT", UnitFeet, 8},
		{"surrounding spaces", "  5  ", UnitFeet, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLength(tt.in, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseLengthRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "0cm", "-3", "8 yards", `8'12"`, "8..5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLength(in, UnitFeet)
			assert.ErrorIs(t, err, ErrBadLength)
		})
	}
}
