package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
)

var errInvalidSize = errors.New("size is not valid")

type sizeFlags struct {
	shape  string
	width  string
	length string
	unit   string
}

func (f *sizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.shape, "shape", "s", string(calculator.ShapeRectangle), "rectangle, square, round, oval or runner")
	cmd.Flags().StringVarP(&f.width, "width", "w", "", `width or diameter, e.g. 8, 8'6" or 240cm`)
	cmd.Flags().StringVarP(&f.length, "length", "l", "", "length (ignored for round and square)")
	cmd.Flags().StringVarP(&f.unit, "unit", "u", string(calculator.UnitFeet), "unit for bare numbers: ft, in, cm or m")
	_ = cmd.MarkFlagRequired("width")
}

func (f *sizeFlags) selection(strict bool) (calculator.Selection, error) {
	sel := calculator.DefaultSelection()

	shape, err := calculator.ParseShape(f.shape)
	if err != nil {
		if strict {
			return sel, err
		}
		shape = calculator.Shape(strings.ToLower(strings.TrimSpace(f.shape)))
	}

	unit := calculator.Unit(f.unit)
	if !unit.Valid() {
		return sel, fmt.Errorf("%w: unit %q", calculator.ErrUnknownCategory, f.unit)
	}

	width, err := calculator.ParseLength(f.width, unit)
	if err != nil {
		return sel, fmt.Errorf("width: %w", err)
	}

	sel.Shape = shape
	sel.SetWidth(width)
	if !shape.Symmetric() {
		if f.length == "" {
			return sel, fmt.Errorf("--length is required for %s rugs", shape)
		}
		length, err := calculator.ParseLength(f.length, unit)
		if err != nil {
			return sel, fmt.Errorf("length: %w", err)
		}
		sel.SetLength(length)
	}
	return sel, nil
}

type priceResult struct {
	Shape      string            `json:"shape"`
	Size       string            `json:"size"`
	Material   string            `json:"material"`
	Quote      calculator.Quote  `json:"quote"`
	Properties map[string]string `json:"properties"`
}

func newPriceCmd(opts *options) *cobra.Command {
	var size sizeFlags
	var material, padType string
	var protection, pad bool

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote a rug",
		Example: `  rugquote price -w 8 -l 10
  rugquote price -s round -w 6 --material silk --protection
  rugquote price -w 240cm -l 300cm --pad --pad-type dual-grip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := size.selection(opts.strict)
			if err != nil {
				return err
			}
			sel.Material = material
			sel.IncludeProtection = protection
			sel.IncludePad = pad
			sel.PadType = padType

			q, err := opts.calc.Quote(sel.Dimensions(), sel.Material, sel.AddOns())
			if err != nil {
				return err
			}
			opts.logger.Debug("Quoted",
				zap.Any("selection", sel),
				zap.Float64("raw_price", q.RawPrice))

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, priceResult{
					Shape:      string(sel.Shape),
					Size:       sel.DisplaySize(),
					Material:   sel.Material,
					Quote:      q,
					Properties: calculator.LineItemProperties(sel, q),
				})
			}

			fmt.Fprintf(out, "%s %s rug, %s\n", sel.DisplaySize(), sel.Material, sel.Shape.Title())
			fmt.Fprintf(out, "Area:  %s\n", calculator.FormatArea(q.Area))
			fmt.Fprintf(out, "Price: %s\n", calculator.FormatPrice(q.FinalPrice))
			if !q.Valid {
				fmt.Fprintln(out, "Warning: this size can't be made:")
				for _, e := range q.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
			return nil
		},
	}

	size.register(cmd)
	cmd.Flags().StringVarP(&material, "material", "m", calculator.DefaultMaterial, "material name")
	cmd.Flags().BoolVar(&protection, "protection", false, "add stain protection")
	cmd.Flags().BoolVar(&pad, "pad", false, "add a rug pad")
	cmd.Flags().StringVar(&padType, "pad-type", calculator.DefaultPadType, "rug pad type")
	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	var size sizeFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a size against production limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := size.selection(opts.strict)
			if err != nil {
				return err
			}
			v := opts.calc.Validate(sel.Dimensions())

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := writeJSON(out, v); err != nil {
					return err
				}
			} else if v.Valid {
				fmt.Fprintf(out, "%s: ok\n", sel.DisplaySize())
			} else {
				for _, e := range v.Errors {
					fmt.Fprintln(out, e)
				}
			}

			if !v.Valid {
				return errInvalidSize
			}
			return nil
		},
	}
	size.register(cmd)
	return cmd
}

func newConvertCmd(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "convert <value>",
		Short:   "Convert a length between ft, in, cm and m",
		Example: "  rugquote convert 240 --from cm --to ft",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			result, err := opts.calc.ConvertUnits(value, calculator.Unit(from), calculator.Unit(to))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, map[string]any{"value": result, "unit": to})
			}
			fmt.Fprintf(out, "%s %s\n", strconv.FormatFloat(result, 'f', -1, 64), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", string(calculator.UnitFeet), "source unit")
	cmd.Flags().StringVar(&to, "to", string(calculator.UnitFeet), "target unit")
	return cmd
}

func newRoomsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List recommended sizes per room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms := calculator.RoomRecommendations()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, rooms)
			}
			for _, room := range rooms {
				fmt.Fprintln(out, room.Key)
				for _, p := range room.Presets {
					fmt.Fprintf(out, "  %-20s %s\n", p.Label,
						calculator.FormatSize(p.Width, p.Length, calculator.ShapeRectangle))
				}
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
