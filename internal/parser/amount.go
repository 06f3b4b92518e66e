package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^\d,.\-]`)

// Normalizer converts amounts printed in either the US convention
// (1,234.56) or the Indonesian one (1.234,56) into the Indonesian form
// with exactly two decimals.
type Normalizer struct {
	// DropZero makes a literal 0.00 come back empty, for layouts that print
	// zero in the column that does not apply.
	DropZero bool
}

// Normalize never fails. Input that cannot be read as a number comes back
// with everything but digits, separators and minus signs stripped.
func (n Normalizer) Normalize(raw string) string {
	s := nonAmountChars.ReplaceAllString(raw, "")
	if s == "" || s == "-" {
		return ""
	}
	if n.DropZero && s == "0.00" {
		return ""
	}

	d, err := decimal.NewFromString(disambiguate(s))
	if err != nil {
		return s
	}
	return FormatCanonical(d)
}

// disambiguate rewrites s into a plain decimal with '.' as the point.
// A lone comma exactly three from the end is read as a decimal comma;
// any other lone comma is a thousands mark.
func disambiguate(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		return strings.ReplaceAll(s, ",", "")
	case hasComma:
		if strings.Index(s, ",") == len(s)-3 {
			return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	default:
		return s
	}
}

// FormatCanonical renders d as 1.234.567,89.
func FormatCanonical(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// ParseCanonical reads a value produced by FormatCanonical.
func ParseCanonical(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	plain := strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// isZeroCanonical reports whether s is a canonical amount equal to zero.
func isZeroCanonical(s string) bool {
	d, ok := ParseCanonical(s)
	return ok && d.IsZero()
}

// looksNumeric is true for tokens made only of digits, separators and a
// minus sign, with at least one digit.
func looksNumeric(tok string) bool {
	digits := 0
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ',' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}
