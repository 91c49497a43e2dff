package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		length float64
		shape  Shape
		errors []string
	}{
		{
			name: "too small rectangle",
			width: 1, length: 1, shape: ShapeRectangle,
			errors: []string{
				"Width must be at least 2 feet",
				"Length must be at least 2 feet",
			},
		},
		{
			name: "too large rectangle",
			width: 16, length: 30, shape: ShapeRectangle,
			errors: []string{
				"Width cannot exceed 15 feet",
				"Length cannot exceed 25 feet",
			},
		},
		{
			name: "square ignores length",
			width: 5, length: 1, shape: ShapeSquare,
		},
		{
			name: "round ignores length",
			width: 15, length: 40, shape: ShapeRound,
		},
		{
			name: "round over diameter cap",
			width: 16, length: 0, shape: ShapeRound,
			errors: []string{
				"Width cannot exceed 15 feet",
				"Round rugs cannot exceed 15 feet in diameter",
			},
		},
		{
			name: "runner too wide",
			width: 5, length: 10, shape: ShapeRunner,
			errors: []string{"Runners should be at least 2.5 times longer than they are wide"},
		},
		{
			name: "runner ok",
			width: 3, length: 10, shape: ShapeRunner,
		},
		{
			name: "runner at exact ratio",
			width: 4, length: 10, shape: ShapeRunner,
		},
		{
			name: "everything wrong with a runner",
			width: 1, length: 1, shape: ShapeRunner,
			errors: []string{
				"Width must be at least 2 feet",
				"Length must be at least 2 feet",
				"Runners should be at least 2.5 times longer than they are wide",
			},
		},
		{
			name: "boundaries are allowed",
			width: 2, length: 25, shape: ShapeOval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDimensions(tt.width, tt.length, tt.shape)
			if len(tt.errors) == 0 {
				assert.True(t, got.Valid)
				assert.Empty(t, got.Errors)
				return
			}
			assert.False(t, got.Valid)
			assert.Equal(t, tt.errors, got.Errors)
		})
	}
}
