package money

import "testing"

func TestGroup(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{649, "649"},
		{1000, "1,000"},
		{45000, "45,000"},
		{150000, "1,50,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{649.5, "649.5"},
		{1999.99, "1,999.99"},
		{100.001, "100"},
		{-2500, "-2,500"},
		{-0.001, "0"},
	}

	for _, tt := range tests {
		if got := Group(tt.in); got != tt.want {
			t.Errorf("Group(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestINR(t *testing.T) {
	if got := INR(649); got != "₹649" {
		t.Errorf("INR(649) = %q", got)
	}
	if got := INR(85000); got != "₹85,000" {
		t.Errorf("INR(85000) = %q", got)
	}
}
