package models

// BankType identifies a supported statement layout.
type BankType string

const (
	BankGeneric BankType = "generic"
	BankBSI     BankType = "bsi"
	BankBRI     BankType = "bri"
	BankBCA     BankType = "bca"
)

// Banks lists every supported layout in detection-independent order.
var Banks = []BankType{BankGeneric, BankBSI, BankBRI, BankBCA}

// RawRow is one candidate transaction as a strategy produced it, fields in
// the layout's own column order.
type RawRow []string

// Record is a cleaned transaction. Fields line up with Statement.Columns.
type Record []string

// Empty reports whether every field is blank.
func (r Record) Empty() bool {
	for _, f := range r {
		if f != "" {
			return false
		}
	}
	return true
}

// Equal reports field-by-field equality.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// PageTrace captures which strategy produced a page's rows.
type PageTrace struct {
	Page     int    `json:"page"`
	Strategy string `json:"strategy,omitempty"` // empty when nothing matched
	Rows     int    `json:"rows"`
}

// Statement is the result of running a layout pipeline over a document.
type Statement struct {
	Bank     BankType
	Columns  []string
	Records  []Record
	Metadata *Metadata
	Pages    int
	Trace    []PageTrace
}

// Column returns the index of the named column, or -1.
func (s *Statement) Column(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Field returns the named field of record i, or "" when either is missing.
func (s *Statement) Field(i int, name string) string {
	col := s.Column(name)
	if col < 0 || i < 0 || i >= len(s.Records) || col >= len(s.Records[i]) {
		return ""
	}
	return s.Records[i][col]
}
