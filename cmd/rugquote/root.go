package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/internal/config"
	"rug-quote/pkg/logger"
)

type options struct {
	pricingFile string
	basePrice   float64
	strict      bool
	verbose     bool
	jsonOutput  bool

	logger *zap.Logger
	calc   *calculator.Calculator
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rugquote",
		Short: "Price custom-size rugs",
		Long: `rugquote prices a custom rug from shape, size, material and add-ons,
checks size limits and converts between units.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.pricingFile, "pricing", "", "YAML pricing catalog overlaying the defaults")
	flags.Float64Var(&opts.basePrice, "base-price", 0, "base price per square foot (default from catalog)")
	flags.BoolVar(&opts.strict, "strict", false, "fail on unknown shapes, materials, pads and units")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(
		newPriceCmd(opts),
		newValidateCmd(opts),
		newConvertCmd(opts),
		newRoomsCmd(opts),
	)
	return root
}

func (o *options) setup() error {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return err
	}
	o.logger = log

	pricing := config.Pricing{
		BasePricePerSqFt: o.basePrice,
		File:             o.pricingFile,
		Strict:           o.strict,
	}
	cfg, err := config.LoadPricing(pricing)
	if err != nil {
		return fmt.Errorf("load pricing: %w", err)
	}

	o.calc, err = calculator.New(cfg, pricing.CalculatorOptions()...)
	if err != nil {
		return err
	}

	o.logger.Debug("Pricing loaded",
		zap.String("file", o.pricingFile),
		zap.Float64("base_price_per_sqft", cfg.BasePricePerSqFt),
		zap.Bool("strict", o.strict))
	return nil
}
