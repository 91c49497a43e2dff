package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDimension(t *testing.T) {
	assert.Equal(t, "5′", FormatDimension(5, 0))
	assert.Equal(t, "5′ 6″", FormatDimension(5, 6))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "8′ × 10′ 6″", FormatSize(8, 10.5, ShapeRectangle))
	assert.Equal(t, "6′ diameter", FormatSize(6, 6, ShapeRound))
	assert.Equal(t, "5′ 6″", FormatSize(5.5, 9, ShapeSquare))
	assert.Equal(t, "6′ × 8′", FormatSize(5.99, 8, ShapeOval))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$1,805", FormatPrice(1805))
	assert.Equal(t, "$650", FormatPrice(650))
	assert.Equal(t, "$12,345", FormatPrice(12345))
}

func TestSelection_Defaults(t *testing.T) {
	sel := DefaultSelection()
	assert.Equal(t, ShapeRectangle, sel.Shape)
	assert.Equal(t, 5.0, sel.Width())
	assert.Equal(t, 5.0, sel.Length())
	assert.Equal(t, "wool", sel.Material)
	assert.Equal(t, "classic-detached", sel.PadType)
}

func TestSelection_SetShapeSyncsLength(t *testing.T) {
	sel := DefaultSelection()
	sel.SetDimensions(8, 6, 10, 0)
	assert.Equal(t, 8.5, sel.Width())
	assert.Equal(t, 10.0, sel.Length())

	sel.SetShape(ShapeRound)
	assert.Equal(t, 8.5, sel.Length())

	sel.SetWidth(6.25)
	assert.Equal(t, 6.0, sel.WidthFeet)
	assert.Equal(t, 3.0, sel.WidthInches)
	assert.Equal(t, 6.25, sel.Length())

	// Length edits can't break the invariant for symmetric shapes.
	sel.SetLength(12)
	assert.Equal(t, 6.25, sel.Length())

	sel.SetShape(ShapeRectangle)
	sel.SetLength(12)
	assert.Equal(t, 12.0, sel.Length())
	assert.Equal(t, 6.25, sel.Width())
}

func TestSelection_Quote(t *testing.T) {
	calc, err := New(DefaultPricingConfig())
	require.NoError(t, err)

	sel := DefaultSelection()
	sel.SetDimensions(8, 0, 10, 0)
	sel.IncludePad = true

	q, err := calc.Quote(sel.Dimensions(), sel.Material, sel.AddOns())
	require.NoError(t, err)
	assert.Equal(t, 1905.0, q.FinalPrice)
	assert.Equal(t, "8′ × 10′", sel.DisplaySize())
}

func TestLineItemProperties(t *testing.T) {
	sel := DefaultSelection()
	sel.SetShape(ShapeRound)
	sel.SetWidth(6)
	sel.IncludeProtection = true

	props := LineItemProperties(sel, Quote{FinalPrice: 1805})
	assert.Equal(t, map[string]string{
		PropShape:      "Round",
		PropSize:       "6′ diameter",
		PropMaterial:   "wool",
		PropPrice:      "$1,805",
		PropProtection: "Yes",
	}, props)

	sel.IncludePad = true
	sel.PadType = "dual-grip"
	props = LineItemProperties(sel, Quote{FinalPrice: 750})
	assert.Equal(t, "dual-grip", props[PropPad])
}

func TestRoomRecommendations(t *testing.T) {
	rooms := RoomRecommendations()
	require.Len(t, rooms, 4)
	assert.Equal(t, "living-room", rooms[0].Key)
	assert.Equal(t, "hallway", rooms[3].Key)

	for _, room := range rooms {
		for _, p := range room.Presets {
			v := ValidateDimensions(p.Width, p.Length, ShapeRectangle)
			assert.True(t, v.Valid, "%s/%s: %v", room.Key, p.Key, v.Errors)
		}
	}
}
