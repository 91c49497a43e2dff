// Package calculator prices custom-size rugs from shape, size, material and
// add-ons. Every function is pure and safe for concurrent use.
package calculator

import (
	"fmt"
	"sort"
)

type Quote struct {
	Area       float64  `json:"area"`
	RawPrice   float64  `json:"raw_price"`
	FinalPrice float64  `json:"final_price"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors"`
}

type Calculator struct {
	cfg    PricingConfig
	strict bool
}

type Option func(*Calculator)

// WithStrict makes unknown shapes, materials, pad types and units fail with
// ErrUnknownCategory instead of falling back to a neutral factor.
func WithStrict() Option {
	return func(c *Calculator) {
		c.strict = true
	}
}

func New(cfg PricingConfig, opts ...Option) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{cfg: cfg.Clone()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the pricing config.
func (c *Calculator) Config() PricingConfig {
	return c.cfg.Clone()
}

func (c *Calculator) Strict() bool {
	return c.strict
}

func (c *Calculator) Area(dims Dimensions) (float64, error) {
	return ComputeArea(dims.Width, dims.Length, dims.Shape)
}

// Price returns the final price rounded to the nearest 5.
func (c *Calculator) Price(dims Dimensions, material string, addOns AddOns) (float64, error) {
	raw, _, err := rawPrice(dims, c.cfg, material, addOns, c.strict)
	if err != nil {
		return 0, err
	}
	return RoundToStep(raw), nil
}

// Quote recomputes area, validity and price for the current inputs.
func (c *Calculator) Quote(dims Dimensions, material string, addOns AddOns) (Quote, error) {
	raw, area, err := rawPrice(dims, c.cfg, material, addOns, c.strict)
	if err != nil {
		return Quote{}, fmt.Errorf("price: %w", err)
	}
	v := ValidateDimensions(dims.Width, dims.Length, dims.Shape)
	return Quote{
		Area:       area,
		RawPrice:   raw,
		FinalPrice: RoundToStep(raw),
		Valid:      v.Valid,
		Errors:     v.Errors,
	}, nil
}

func (c *Calculator) Validate(dims Dimensions) Validation {
	return ValidateDimensions(dims.Width, dims.Length, dims.Shape)
}

func (c *Calculator) ConvertUnits(value float64, from, to Unit) (float64, error) {
	if c.strict {
		return ConvertUnitsStrict(value, from, to)
	}
	return ConvertUnits(value, from, to), nil
}

// Materials returns the configured material names sorted by name.
func (c *Calculator) Materials() []string {
	out := make([]string, 0, len(c.cfg.MaterialMultipliers))
	for name := range c.cfg.MaterialMultipliers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Calculator) PadTypes() []string {
	out := make([]string, 0, len(c.cfg.PadPrices))
	for name := range c.cfg.PadPrices {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
