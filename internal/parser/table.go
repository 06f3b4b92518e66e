package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// GridTableStrategy reads rows out of the tables the document reader
// detected on the page.
type GridTableStrategy struct {
	MinCells int
	Columns  int
	// IsHeader gets the row's cells joined with spaces and lower-cased.
	IsHeader func(joined string) bool
}

func (s GridTableStrategy) Name() string { return "grid-table" }

func (s GridTableStrategy) Extract(scan PageScan) []models.RawRow {
	var rows []models.RawRow
	for _, table := range scan.Page.Tables {
		for _, tr := range table {
			if len(tr) < s.MinCells || len(tr) < 2 {
				continue
			}
			cells := tr.Strings()
			joined := strings.ToLower(strings.Join(cells, " "))
			if s.IsHeader != nil && s.IsHeader(joined) {
				continue
			}
			if strings.TrimSpace(cells[0]) == "" && strings.TrimSpace(cells[1]) == "" {
				continue
			}
			rows = append(rows, fitColumns(cells, s.Columns))
		}
	}
	return rows
}

// fitColumns trims every cell and truncates or pads to n fields.
func fitColumns(cells []string, n int) models.RawRow {
	row := make(models.RawRow, n)
	for i := 0; i < n && i < len(cells); i++ {
		row[i] = strings.TrimSpace(cells[i])
	}
	return row
}

var columnGap = regexp.MustCompile(`\s{2,}`)

// DelimitedLineStrategy splits text lines on runs of two or more spaces,
// which is how the reader renders column gaps.
type DelimitedLineStrategy struct {
	Fields int
	Skip   LineFilter
}

func (s DelimitedLineStrategy) Name() string { return "delimited-text" }

func (s DelimitedLineStrategy) Extract(scan PageScan) []models.RawRow {
	var rows []models.RawRow
	for _, line := range pageLines(scan.Page.Text) {
		if s.Skip.skip(line) {
			continue
		}
		parts := columnGap.Split(line, -1)
		if len(parts) < s.Fields || !isRowNumber(parts[0]) {
			continue
		}
		rows = append(rows, fitColumns(parts, s.Fields))
	}
	return rows
}

// isRowNumber accepts "12" and "12." style leading counters.
func isRowNumber(s string) bool {
	s = strings.ReplaceAll(s, ".", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
