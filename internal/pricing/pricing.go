// Package pricing derives numeric totals from the display price labels
// published in the catalog ("275,000 CFA", "$450") and formats totals back
// into the same label shape.
package pricing

import "strings"

// ParseUnitPrice strips every non-digit character and parses the remainder
// as an integer. A label with no digits parses to 0 rather than erroring;
// catalog authoring is expected to catch that upstream.
func ParseUnitPrice(label string) int64 {
	var n int64
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < '0' || c > '9' {
			continue
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

// ComputeTotal is the single source of truth for totalPrice/amount:
// unit price times quantity.
func ComputeTotal(label string, quantity int) int64 {
	return ParseUnitPrice(label) * int64(quantity)
}

// FormatTotal renders a total in the same currency shape as the unit price
// label it was derived from: "$450" -> "$900", "275,000 CFA" -> "550,000 CFA".
func FormatTotal(label string, total int64) string {
	grouped := GroupThousands(total)
	if strings.HasPrefix(strings.TrimSpace(label), "$") {
		return "$" + grouped
	}
	if suffix := trailingUnit(label); suffix != "" {
		return grouped + " " + suffix
	}
	return grouped
}

// GroupThousands inserts comma separators: 550000 -> "550,000".
func GroupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := []byte{}
	if n == 0 {
		digits = append(digits, '0')
	}
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// trailingUnit returns the unit suffix after the last digit ("CFA"), or "".
func trailingUnit(label string) string {
	last := strings.LastIndexFunc(label, func(r rune) bool { return r >= '0' && r <= '9' })
	if last < 0 {
		return strings.TrimSpace(label)
	}
	return strings.TrimSpace(label[last+1:])
}
