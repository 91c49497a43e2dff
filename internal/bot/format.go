package bot

import (
	"fmt"
	"strings"

	"rug-quote/internal/calculator"
	"rug-quote/internal/storage"
)

const helpText = `Custom rug quotes.

/start - price a new rug
/unit ft|in|cm|m - set the unit for typed sizes
/sizes - recommended sizes per room
/help - this message`

const adminHelpText = `

Admin:
/export - recent quotes as xlsx
/status <reference> [status] - show or update a quote
/material <name> <multiplier> - add or reprice a material`

func widthPrompt(shape calculator.Shape, unit calculator.Unit) string {
	what := "width"
	if shape == calculator.ShapeRound {
		what = "diameter"
	}
	return fmt.Sprintf("Enter the %s (e.g. 8, 8'6\" or 240cm). Plain numbers are read as %s.", what, unitName(unit))
}

func lengthPrompt(unit calculator.Unit) string {
	return fmt.Sprintf("Enter the length. Plain numbers are read as %s.", unitName(unit))
}

func unitName(u calculator.Unit) string {
	switch u {
	case calculator.UnitInches:
		return "inches"
	case calculator.UnitCentimeters:
		return "centimeters"
	case calculator.UnitMeters:
		return "meters"
	}
	return "feet"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func padLabel(sel calculator.Selection) string {
	if !sel.IncludePad {
		return "none"
	}
	return sel.PadType
}

func formatQuote(sel calculator.Selection, q calculator.Quote) string {
	var sb strings.Builder
	sb.WriteString("🧾 Your rug\n\n")
	fmt.Fprintf(&sb, "Shape: %s\n", sel.Shape.Title())
	fmt.Fprintf(&sb, "Size: %s\n", sel.DisplaySize())
	fmt.Fprintf(&sb, "Material: %s\n", sel.Material)
	fmt.Fprintf(&sb, "Area: %s\n", calculator.FormatArea(q.Area))
	fmt.Fprintf(&sb, "Protection: %s\n", yesNo(sel.IncludeProtection))
	fmt.Fprintf(&sb, "Pad: %s\n\n", padLabel(sel))
	fmt.Fprintf(&sb, "Price: %s", calculator.FormatPrice(q.FinalPrice))
	return sb.String()
}

func formatValidationErrors(errs []string) string {
	var sb strings.Builder
	sb.WriteString("This size can't be made:\n")
	for _, e := range errs {
		sb.WriteString("• ")
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatRooms(rooms []calculator.Room) string {
	var sb strings.Builder
	sb.WriteString("📐 Recommended sizes\n")
	for _, room := range rooms {
		fmt.Fprintf(&sb, "\n%s\n", roomTitle(room.Key))
		for _, p := range room.Presets {
			fmt.Fprintf(&sb, "  %s: %s\n", p.Label,
				calculator.FormatSize(p.Width, p.Length, calculator.ShapeRectangle))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func roomTitle(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func formatCartNotification(rec storage.QuoteRecord, username string) string {
	var sb strings.Builder
	sb.WriteString("🆕 Rug added to cart\n\n")
	fmt.Fprintf(&sb, "Reference: %s\n", rec.Reference)
	fmt.Fprintf(&sb, "User: %d", rec.UserID)
	if username != "" {
		fmt.Fprintf(&sb, " (@%s)", username)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Shape: %s\n", calculator.Shape(rec.Shape).Title())
	fmt.Fprintf(&sb, "Size: %s\n", rec.DisplaySize)
	fmt.Fprintf(&sb, "Material: %s\n", rec.Material)
	fmt.Fprintf(&sb, "Protection: %s\n", yesNo(rec.Protection))
	pad := rec.PadType
	if pad == "" {
		pad = "none"
	}
	fmt.Fprintf(&sb, "Pad: %s\n", pad)
	fmt.Fprintf(&sb, "Price: %s", calculator.FormatPrice(rec.FinalPrice))
	return sb.String()
}
