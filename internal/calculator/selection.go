package calculator

import "math"

// Selection is the in-progress rug configuration a customer edits. It holds
// no derived values. Callers re-run Quote after every change.
type Selection struct {
	Shape             Shape   `json:"shape"`
	WidthFeet         float64 `json:"width_feet"`
	WidthInches       float64 `json:"width_inches"`
	LengthFeet        float64 `json:"length_feet"`
	LengthInches      float64 `json:"length_inches"`
	Material          string  `json:"material"`
	IncludeProtection bool    `json:"include_protection"`
	IncludePad        bool    `json:"include_pad"`
	PadType           string  `json:"pad_type"`
}

const (
	DefaultMaterial = "wool"
	DefaultPadType  = "classic-detached"
)

func DefaultSelection() Selection {
	return Selection{
		Shape:      ShapeRectangle,
		WidthFeet:  5,
		LengthFeet: 5,
		Material:   DefaultMaterial,
		PadType:    DefaultPadType,
	}
}

func (s Selection) Width() float64 {
	return s.WidthFeet + s.WidthInches/12
}

func (s Selection) Length() float64 {
	return s.LengthFeet + s.LengthInches/12
}

func (s *Selection) SetDimensions(widthFeet, widthInches, lengthFeet, lengthInches float64) {
	s.WidthFeet = widthFeet
	s.WidthInches = widthInches
	s.LengthFeet = lengthFeet
	s.LengthInches = lengthInches
	s.syncLength()
}

// SetWidth stores a width given in decimal feet.
func (s *Selection) SetWidth(feet float64) {
	s.WidthFeet, s.WidthInches = splitFeet(feet)
	s.syncLength()
}

func (s *Selection) SetLength(feet float64) {
	s.LengthFeet, s.LengthInches = splitFeet(feet)
	s.syncLength()
}

func (s *Selection) SetShape(shape Shape) {
	s.Shape = shape
	s.syncLength()
}

func (s *Selection) syncLength() {
	if s.Shape.Symmetric() {
		s.LengthFeet = s.WidthFeet
		s.LengthInches = s.WidthInches
	}
}

func (s Selection) Dimensions() Dimensions {
	return NewDimensions(s.Shape, s.Width(), s.Length())
}

func (s Selection) AddOns() AddOns {
	return AddOns{
		Protection: s.IncludeProtection,
		Pad:        s.IncludePad,
		PadType:    s.PadType,
	}
}

func (s Selection) DisplaySize() string {
	return FormatSize(s.Width(), s.Length(), s.Shape)
}

func splitFeet(v float64) (feet, inches float64) {
	feet = math.Floor(v)
	inches = (v - feet) * 12
	return feet, inches
}
