package calculator

import (
	"fmt"
	"strconv"
)

const (
	MinSideFeet      = 2.0
	MaxWidthFeet     = 15.0
	MaxLengthFeet    = 25.0
	MaxRoundDiameter = 15.0
	MinRunnerRatio   = 2.5
)

type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateDimensions reports every violated size rule, not just the first one.
func ValidateDimensions(width, length float64, shape Shape) Validation {
	errs := []string{}
	checkLength := !shape.Symmetric()

	if width < MinSideFeet {
		errs = append(errs, fmt.Sprintf("Width must be at least %s feet", feet(MinSideFeet)))
	}
	if checkLength && length < MinSideFeet {
		errs = append(errs, fmt.Sprintf("Length must be at least %s feet", feet(MinSideFeet)))
	}

	if width > MaxWidthFeet {
		errs = append(errs, fmt.Sprintf("Width cannot exceed %s feet", feet(MaxWidthFeet)))
	}
	if checkLength && length > MaxLengthFeet {
		errs = append(errs, fmt.Sprintf("Length cannot exceed %s feet", feet(MaxLengthFeet)))
	}

	if shape == ShapeRound && width > MaxRoundDiameter {
		errs = append(errs, fmt.Sprintf("Round rugs cannot exceed %s feet in diameter", feet(MaxRoundDiameter)))
	}

	if shape == ShapeRunner && length/width < MinRunnerRatio {
		errs = append(errs, fmt.Sprintf("Runners should be at least %s times longer than they are wide", feet(MinRunnerRatio)))
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func feet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
