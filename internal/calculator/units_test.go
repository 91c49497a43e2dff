package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertUnits(t *testing.T) {
	assert.InDelta(t, 1.0, ConvertUnits(12, UnitInches, UnitFeet), 1e-12)
	assert.InDelta(t, 3.28084, ConvertUnits(1, UnitMeters, UnitFeet), 1e-12)
	assert.InDelta(t, 30.48, ConvertUnits(1, UnitFeet, UnitCentimeters), 1e-12)
	assert.InDelta(t, 1.0, ConvertUnits(2.54, UnitCentimeters, UnitInches), 1e-9)
	assert.InDelta(t, 96.0, ConvertUnits(8, UnitFeet, UnitInches), 1e-12)
}

func TestConvertUnits_UnknownUnitIsIdentity(t *testing.T) {
	assert.Equal(t, 7.0, ConvertUnits(7, Unit("yd"), UnitFeet))
	assert.Equal(t, 7.0, ConvertUnits(7, UnitFeet, Unit("furlong")))
}

func TestConvertUnitsStrict(t *testing.T) {
	v, err := ConvertUnitsStrict(24, UnitInches, UnitFeet)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	_, err = ConvertUnitsStrict(7, Unit("yd"), UnitFeet)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ConvertUnitsStrict(7, UnitFeet, Unit("yd"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCalculator_ConvertUnits(t *testing.T) {
	lenient, err := New(DefaultPricingConfig())
	require.NoError(t, err)
	v, err := lenient.ConvertUnits(7, "yd", UnitFeet)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	strict, err := New(DefaultPricingConfig(), WithStrict())
	require.NoError(t, err)
	_, err = strict.ConvertUnits(7, "yd", UnitFeet)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
