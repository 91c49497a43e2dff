package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rug-quote/internal/calculator"
)

// PricingFile is the on-disk catalog format. Every section overlays the
// built-in defaults key by key.
type PricingFile struct {
	BasePricePerSqFt float64            `yaml:"base_price_per_sqft"`
	Shapes           map[string]float64 `yaml:"shapes"`
	Materials        map[string]float64 `yaml:"materials"`
	Pads             map[string]float64 `yaml:"pads"`
}

// LoadPricing builds the calculator's pricing config: defaults, then the env
// base price, then the optional catalog file.
func LoadPricing(p Pricing) (calculator.PricingConfig, error) {
	cfg := calculator.DefaultPricingConfig()
	if p.BasePricePerSqFt > 0 {
		cfg.BasePricePerSqFt = p.BasePricePerSqFt
	}

	if p.File != "" {
		data, err := os.ReadFile(p.File)
		if err != nil {
			return calculator.PricingConfig{}, fmt.Errorf("read pricing file: %w", err)
		}
		var file PricingFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return calculator.PricingConfig{}, fmt.Errorf("parse pricing file %s: %w", p.File, err)
		}
		if err := file.apply(&cfg, p.Strict); err != nil {
			return calculator.PricingConfig{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return calculator.PricingConfig{}, err
	}
	return cfg, nil
}

func (f PricingFile) apply(cfg *calculator.PricingConfig, strict bool) error {
	if f.BasePricePerSqFt != 0 {
		cfg.BasePricePerSqFt = f.BasePricePerSqFt
	}
	for name, m := range f.Shapes {
		shape, err := calculator.ParseShape(name)
		if err != nil {
			if strict {
				return fmt.Errorf("pricing file: %w", err)
			}
			shape = calculator.Shape(name)
		}
		cfg.ShapeMultipliers[shape] = m
	}
	for name, m := range f.Materials {
		cfg.MaterialMultipliers[name] = m
	}
	for name, price := range f.Pads {
		cfg.PadPrices[name] = price
	}
	return nil
}

// OverlayMaterials applies admin overrides from the materials table on top of
// a loaded pricing config. The table holds only names an admin has set, so
// catalog values survive unless an admin changed them.
func OverlayMaterials(cfg calculator.PricingConfig, overrides map[string]float64) (calculator.PricingConfig, error) {
	out := cfg.Clone()
	for name, m := range overrides {
		out.MaterialMultipliers[name] = m
	}
	if err := out.Validate(); err != nil {
		return calculator.PricingConfig{}, fmt.Errorf("material overrides: %w", err)
	}
	return out, nil
}

// CalculatorOptions maps pricing settings onto calculator options.
func (p Pricing) CalculatorOptions() []calculator.Option {
	var opts []calculator.Option
	if p.Strict {
		opts = append(opts, calculator.WithStrict())
	}
	return opts
}
