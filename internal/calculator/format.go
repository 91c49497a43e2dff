package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

func FormatDimension(feet, inches int) string {
	if inches == 0 {
		return fmt.Sprintf("%d′", feet)
	}
	return fmt.Sprintf("%d′ %d″", feet, inches)
}

// FormatSize renders a size the way it is shown on the product page,
// e.g. "8′ × 10′ 6″" or "6′ diameter".
func FormatSize(width, length float64, shape Shape) string {
	w := formatFeet(width)
	switch shape {
	case ShapeRound:
		return w + " diameter"
	case ShapeSquare:
		return w
	}
	return w + " × " + formatFeet(length)
}

func formatFeet(v float64) string {
	ft := math.Floor(v)
	in := math.Round((v - ft) * 12)
	if in >= 12 {
		ft++
		in = 0
	}
	return FormatDimension(int(ft), int(in))
}

// FormatPrice renders whole dollars with thousands separators.
func FormatPrice(price float64) string {
	return "$" + humanize.Comma(int64(math.Round(price)))
}

func FormatArea(area float64) string {
	return fmt.Sprintf("%.1f sq ft", area)
}

func (s Shape) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
