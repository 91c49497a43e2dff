package calculator

// Cart line item property names.
const (
	PropShape      = "Shape"
	PropSize       = "Size"
	PropMaterial   = "Material"
	PropPrice      = "Price"
	PropProtection = "Protection"
	PropPad        = "Rug Pad"
)

// LineItemProperties returns the human-readable properties attached to the
// cart line for a custom rug.
func LineItemProperties(sel Selection, q Quote) map[string]string {
	props := map[string]string{
		PropShape:    sel.Shape.Title(),
		PropSize:     sel.DisplaySize(),
		PropMaterial: sel.Material,
		PropPrice:    FormatPrice(q.FinalPrice),
	}
	if sel.IncludeProtection {
		props[PropProtection] = "Yes"
	}
	if sel.IncludePad {
		props[PropPad] = sel.PadType
	}
	return props
}
