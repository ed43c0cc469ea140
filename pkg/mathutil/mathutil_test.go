package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal values", 0.25, 0.25, 1e-9, true},
		{"Inside tolerance", 0.25, 0.25 + 1e-12, 1e-9, true},
		{"Outside tolerance", 0.25, 0.26, 1e-9, false},
		{"Exactly at tolerance", 1.0, 1.5, 0.5, true},
		{"Negative values", -3, -3.1, 0.2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	if !IsFinite(1.5) || !IsFinite(-1e300) {
		t.Error("expected ordinary values to be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("expected NaN and infinities to be non-finite")
	}
	if !AllFinite() {
		t.Error("AllFinite() with no values should be true")
	}
	if AllFinite(1, 2, math.Inf(1)) {
		t.Error("AllFinite should reject an infinity")
	}
}
