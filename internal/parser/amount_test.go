package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thousands", "222,432.00", "222.432,00"},
		{"millions", "2,662,608.00", "2.662.608,00"},
		{"round", "196,000.00", "196.000,00"},
		{"comma only as thousands", "1,000", "1.000,00"},
		{"comma three from end is decimal", "123,45", "123,45"},
		{"grouped comma is thousands", "1,234,567", "1.234.567,00"},
		{"plain integer", "1234", "1.234,00"},
		{"dot decimal", "0.5", "0,50"},
		{"negative", "-1,234.50", "-1.234,50"},
		{"currency noise", "Rp 1,500.00 CR", "1.500,00"},
		{"both separators read US style", "1.234,56", "1,23"},
		{"zero kept", "0.00", "0,00"},
		{"empty", "", ""},
		{"dash", "-", ""},
		{"letters only", "n/a", ""},
		{"unparseable echoes sanitized", "1.2.3 x", "1.2.3"},
	}

	var n Normalizer
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeDropZero(t *testing.T) {
	n := Normalizer{DropZero: true}
	assert.Equal(t, "", n.Normalize("0.00"))
	assert.Equal(t, "", n.Normalize(" 0.00 "))
	assert.Equal(t, "10,00", n.Normalize("10.00"))
}

// toUSForm swaps the separators of a canonical amount.
func toUSForm(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.':
			return ','
		case ',':
			return '.'
		}
		return r
	}, s)
}

func TestNormalizeRoundTrip(t *testing.T) {
	canonical := []string{
		"0,01", "1,00", "12,50", "999,99", "1.000,00", "12.345,67",
		"222.432,00", "2.662.608,00", "1.000.000.000,10", "-5.000,00",
	}
	var n Normalizer
	for _, s := range canonical {
		assert.Equal(t, s, n.Normalize(toUSForm(s)), "round trip of %s", s)
	}
}

func TestCanonicalHelpers(t *testing.T) {
	d, ok := ParseCanonical("1.234.567,89")
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1234567.89")))

	_, ok = ParseCanonical("")
	assert.False(t, ok)
	_, ok = ParseCanonical("abc")
	assert.False(t, ok)

	assert.Equal(t, "0,00", FormatCanonical(decimal.Zero))
	assert.Equal(t, "100,00", FormatCanonical(decimal.NewFromInt(100)))
	assert.Equal(t, "-1.000,50", FormatCanonical(decimal.RequireFromString("-1000.5")))

	assert.True(t, isZeroCanonical("0,00"))
	assert.False(t, isZeroCanonical("0,01"))
	assert.False(t, isZeroCanonical(""))
}
