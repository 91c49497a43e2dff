package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidShape    = errors.New("invalid shape")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidPricing  = errors.New("invalid pricing config")
)

type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeSquare    Shape = "square"
	ShapeRound     Shape = "round"
	ShapeOval      Shape = "oval"
	ShapeRunner    Shape = "runner"
)

// Shapes lists the recognized shapes in display order.
var Shapes = []Shape{ShapeRectangle, ShapeSquare, ShapeRound, ShapeOval, ShapeRunner}

func (s Shape) Valid() bool {
	switch s {
	case ShapeRectangle, ShapeSquare, ShapeRound, ShapeOval, ShapeRunner:
		return true
	}
	return false
}

// Symmetric reports whether length is derived from width.
func (s Shape) Symmetric() bool {
	return s == ShapeRound || s == ShapeSquare
}

func ParseShape(raw string) (Shape, error) {
	s := Shape(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShape, raw)
	}
	return s, nil
}

const (
	DefaultPadPrice        = 100.0
	MinProtectionPrice     = 62.0
	ProtectionPricePerSqFt = 0.5
	priceStep              = 5.0
)

// Dimensions are in feet. For round rugs Width is the diameter.
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Shape  Shape   `json:"shape"`
}

func NewDimensions(shape Shape, width, length float64) Dimensions {
	if shape.Symmetric() {
		length = width
	}
	return Dimensions{Width: width, Length: length, Shape: shape}
}

type AddOns struct {
	Protection bool   `json:"protection"`
	Pad        bool   `json:"pad"`
	PadType    string `json:"pad_type,omitempty"`
}

type PricingConfig struct {
	BasePricePerSqFt    float64
	ShapeMultipliers    map[Shape]float64
	MaterialMultipliers map[string]float64
	PadPrices           map[string]float64
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BasePricePerSqFt: 23,
		ShapeMultipliers: map[Shape]float64{
			ShapeRectangle: 1.0,
			ShapeSquare:    1.0,
			ShapeRound:     1.15,
			ShapeOval:      1.10,
			ShapeRunner:    1.05,
		},
		MaterialMultipliers: map[string]float64{
			"wool":      1.0,
			"jute":      0.8,
			"silk":      2.5,
			"synthetic": 0.7,
			"cotton":    0.9,
		},
		PadPrices: map[string]float64{
			"classic-attached": 100,
			"classic-detached": 100,
			"dual-grip":        120,
		},
	}
}

// ValidFactor reports whether v can serve as a price or multiplier. NaN and
// infinities are rejected along with non-positive values.
func ValidFactor(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (c PricingConfig) Validate() error {
	if !ValidFactor(c.BasePricePerSqFt) {
		return fmt.Errorf("%w: base price %.2f", ErrInvalidPricing, c.BasePricePerSqFt)
	}
	for shape, m := range c.ShapeMultipliers {
		if !ValidFactor(m) {
			return fmt.Errorf("%w: shape %s multiplier %.2f", ErrInvalidPricing, shape, m)
		}
	}
	for material, m := range c.MaterialMultipliers {
		if !ValidFactor(m) {
			return fmt.Errorf("%w: material %s multiplier %.2f", ErrInvalidPricing, material, m)
		}
	}
	for pad, p := range c.PadPrices {
		if !ValidFactor(p) {
			return fmt.Errorf("%w: pad %s price %.2f", ErrInvalidPricing, pad, p)
		}
	}
	return nil
}

func (c PricingConfig) Clone() PricingConfig {
	out := PricingConfig{
		BasePricePerSqFt:    c.BasePricePerSqFt,
		ShapeMultipliers:    make(map[Shape]float64, len(c.ShapeMultipliers)),
		MaterialMultipliers: make(map[string]float64, len(c.MaterialMultipliers)),
		PadPrices:           make(map[string]float64, len(c.PadPrices)),
	}
	for k, v := range c.ShapeMultipliers {
		out.ShapeMultipliers[k] = v
	}
	for k, v := range c.MaterialMultipliers {
		out.MaterialMultipliers[k] = v
	}
	for k, v := range c.PadPrices {
		out.PadPrices[k] = v
	}
	return out
}

// ComputeArea returns the rug area in square feet.
func ComputeArea(width, length float64, shape Shape) (float64, error) {
	switch shape {
	case ShapeRectangle, ShapeRunner:
		return width * length, nil
	case ShapeSquare:
		return width * width, nil
	case ShapeRound:
		radius := width / 2
		return math.Pi * radius * radius, nil
	case ShapeOval:
		return math.Pi * (width / 2) * (length / 2), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
}

// SizeTierMultiplier is the volume discount. Each tier includes its lower bound.
func SizeTierMultiplier(area float64) float64 {
	switch {
	case area >= 200:
		return 0.90
	case area >= 100:
		return 0.95
	case area >= 50:
		return 0.98
	default:
		return 1.0
	}
}

// RoundToStep rounds half away from zero to the nearest multiple of 5.
func RoundToStep(price float64) float64 {
	return math.Round(price/priceStep) * priceStep
}

// ComputePrice prices dims with cfg in lenient mode. Unknown shapes, materials
// and pad types silently lose their multiplier.
func ComputePrice(dims Dimensions, cfg PricingConfig, material string, addOns AddOns) float64 {
	raw, _, _ := rawPrice(dims, cfg, material, addOns, false)
	return RoundToStep(raw)
}

func rawPrice(dims Dimensions, cfg PricingConfig, material string, addOns AddOns, strict bool) (price, area float64, err error) {
	area, err = ComputeArea(dims.Width, dims.Length, dims.Shape)
	if err != nil {
		if strict {
			return 0, 0, fmt.Errorf("%w: shape %q", ErrUnknownCategory, dims.Shape)
		}
		// Unknown shapes are priced as rectangles.
		area = dims.Width * dims.Length
	}

	price = area * cfg.BasePricePerSqFt

	shapeMul, err := lookup(cfg.ShapeMultipliers, dims.Shape, 1.0, strict, "shape")
	if err != nil {
		return 0, 0, err
	}
	price *= shapeMul

	materialMul, err := lookup(cfg.MaterialMultipliers, material, 1.0, strict, "material")
	if err != nil {
		return 0, 0, err
	}
	price *= materialMul

	price *= SizeTierMultiplier(area)

	if addOns.Protection {
		price += math.Max(MinProtectionPrice, area*ProtectionPricePerSqFt)
	}

	if addOns.Pad {
		padPrice, err := lookup(cfg.PadPrices, addOns.PadType, DefaultPadPrice, strict, "pad type")
		if err != nil {
			return 0, 0, err
		}
		price += padPrice
	}

	return price, area, nil
}

func lookup[K comparable](table map[K]float64, key K, fallback float64, strict bool, kind string) (float64, error) {
	if v, ok := table[key]; ok {
		return v, nil
	}
	if strict {
		return 0, fmt.Errorf("%w: %s %v", ErrUnknownCategory, kind, key)
	}
	return fallback, nil
}
