package parser

import (
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// PageScan is the input a strategy sees for one page. Layout is only set
// for layouts that derive column positions from page 1.
type PageScan struct {
	Page   models.PageContent
	Layout models.ColumnLayout
}

// RowStrategy turns one page into candidate rows. A strategy that is not
// confident returns nothing; it never fails the page.
type RowStrategy interface {
	Name() string
	Extract(scan PageScan) []models.RawRow
}

// LineFilter reports lines that belong to page furniture (headers,
// footers, page counters) rather than to the ledger.
type LineFilter func(line string) bool

func (f LineFilter) skip(line string) bool {
	return f != nil && f(line)
}

// anyFilter combines filters; a line is skipped when any of them says so.
func anyFilter(filters ...LineFilter) LineFilter {
	return func(line string) bool {
		for _, f := range filters {
			if f.skip(line) {
				return true
			}
		}
		return false
	}
}

// containsAll is a filter matching lines that carry every phrase.
func containsAll(phrases ...string) LineFilter {
	return func(line string) bool {
		for _, p := range phrases {
			if !strings.Contains(line, p) {
				return false
			}
		}
		return true
	}
}

// pageLines splits page text into trimmed, non-empty lines.
func pageLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
