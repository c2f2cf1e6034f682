// Package money renders amounts the way Indian users read them: rupee sign,
// lakh/crore digit grouping (12,34,567) and at most two decimals.
package money

import (
	"strconv"
	"strings"
)

// INR renders v as a rupee amount, e.g. 150000 -> "₹1,50,000".
func INR(v float64) string {
	return "₹" + Group(v)
}

// Group renders v with en-IN digit grouping and trailing zero decimals trimmed.
func Group(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "0.00" {
		neg = false
	}

	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(groupDigits(intPart))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// groupDigits places a comma before the last three digits and then after
// every two digits moving left.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append(parts, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append(parts, head)
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}
