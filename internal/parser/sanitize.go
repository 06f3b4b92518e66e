package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	nonPrintable = regexp.MustCompile(`[^\x20-\x7E\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Sanitize folds accented letters to their base form, drops anything
// outside printable ASCII other than whitespace, collapses whitespace and
// trims.
func Sanitize(raw string) string {
	s := norm.NFKD.String(raw)
	s = nonPrintable.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
