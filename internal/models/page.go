package models

// Word is a positioned token on a page. X is the left edge and Y the
// baseline, both in PDF user space.
type Word struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Cell is one table cell. Value is nil when the reader found nothing there.
// X is the cell's left edge, 0 when unknown.
type Cell struct {
	Value *string
	X     float64
}

// Text returns the cell value or "".
func (c Cell) Text() string {
	if c.Value == nil {
		return ""
	}
	return *c.Value
}

// TextCell builds a present cell with an unknown position.
func TextCell(s string) Cell {
	return Cell{Value: &s}
}

// TableRow is an ordered sequence of optional cells.
type TableRow []Cell

// Strings renders the row with absent cells as "".
func (r TableRow) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text()
	}
	return out
}

// Table is a detected grid on a page.
type Table []TableRow

// PageContent is what the document reader hands the engine for one page.
// The engine treats it as read-only.
type PageContent struct {
	Number int
	Text   string
	Tables []Table
	Words  []Word
}

// ColumnLayout holds x positions of named columns taken from page 1.
type ColumnLayout map[string]float64

const (
	LayoutHeaderY = "header_y"
	LayoutDebit   = "debit"
	LayoutCredit  = "credit"
	LayoutBalance = "balance"
	LayoutTeller  = "teller"
)

// Has reports whether the named column was located.
func (l ColumnLayout) Has(name string) bool {
	_, ok := l[name]
	return ok
}
