package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// Assemble drops blank records and exact duplicates. Survivors keep the
// position of their first occurrence.
func Assemble(records []models.Record) []models.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Empty() {
			continue
		}
		key := strings.Join(r, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// TotalRule sums one amount column into a metadata key.
type TotalRule struct {
	Key    string
	Column string
}

// applyTotals writes column sums and the record count into the statement
// metadata. Fields that are not canonical amounts are left out of the sum.
func applyTotals(st *models.Statement, rules []TotalRule) {
	for _, rule := range rules {
		col := st.Column(rule.Column)
		if col < 0 {
			continue
		}
		sum := decimal.Zero
		for _, r := range st.Records {
			if d, ok := ParseCanonical(r[col]); ok {
				sum = sum.Add(d)
			}
		}
		st.Metadata.Set(rule.Key, FormatCanonical(sum))
	}
	st.Metadata.Set(KeyTransactions, strconv.Itoa(len(st.Records)))
}
