package format

import "testing"

func TestRupees(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "₹0.00"},
		{"Hundreds", 999.5, "₹999.50"},
		{"Thousands", 1234.56, "₹1,234.56"},
		{"One lakh", 100000, "₹1,00,000.00"},
		{"Ten lakh", 1000000, "₹10,00,000.00"},
		{"One crore", 10000000, "₹1,00,00,000.00"},
		{"Mixed digits", 12345678.9, "₹1,23,45,678.90"},
		{"Negative", -12345.678, "-₹12,345.68"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rupees(tt.amount); got != tt.expected {
				t.Errorf("Rupees(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericRupees(t *testing.T) {
	if got := NumericRupees(-123456); got != "-1,23,456.00" {
		t.Errorf("NumericRupees(-123456) = %q", got)
	}
	if got := NumericRupees(42); got != "42.00" {
		t.Errorf("NumericRupees(42) = %q", got)
	}
}

func TestCrores(t *testing.T) {
	tests := []struct {
		rupees   float64
		expected string
	}{
		{100_000_000, "₹10.00 Cr"},
		{5_000_000, "₹0.50 Cr"},
		{12_345_600_000, "₹1,234.56 Cr"},
		{-20_000_000, "-₹2.00 Cr"},
	}

	for _, tt := range tests {
		if got := Crores(tt.rupees); got != tt.expected {
			t.Errorf("Crores(%v) = %q, expected %q", tt.rupees, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.1271); got != "12.71%" {
		t.Errorf("Percent(0.1271) = %q", got)
	}
	if got := Percent(-0.05); got != "-5.00%" {
		t.Errorf("Percent(-0.05) = %q", got)
	}
}
