package parser

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

var layoutLabels = []struct {
	column string
	labels []string
}{
	{models.LayoutDebit, []string{"debet", "debit"}},
	{models.LayoutCredit, []string{"kredit", "credit"}},
	{models.LayoutBalance, []string{"saldo", "balance"}},
	{models.LayoutTeller, []string{"teller", "user"}},
}

// BuildColumnLayout locates the amount and teller column headers among the
// page-1 words. The first word matching a label wins, so body text further
// down the page cannot move a column.
func BuildColumnLayout(words []models.Word) models.ColumnLayout {
	layout := models.ColumnLayout{}
	for i, w := range words {
		word := strings.ToLower(strings.Trim(w.Text, ":.()/ "))
		if word == "" {
			continue
		}
		if word == "tanggal" && i+1 < len(words) && strings.EqualFold(strings.TrimSpace(words[i+1].Text), "transaksi") {
			if !layout.Has(models.LayoutHeaderY) {
				layout[models.LayoutHeaderY] = w.Y
			}
			continue
		}
		for _, l := range layoutLabels {
			if layout.Has(l.column) || !matchesLabel(word, l.labels) {
				continue
			}
			layout[l.column] = w.X
			break
		}
	}
	return layout
}

// matchesLabel allows one edit on longer labels to absorb extraction noise
// such as a dropped or doubled letter.
func matchesLabel(word string, labels []string) bool {
	for _, label := range labels {
		if word == label {
			return true
		}
		if len(label) >= 5 && fuzzy.LevenshteinDistance(word, label) <= 1 {
			return true
		}
	}
	return false
}

// AmountRowStrategy reads rows whose amounts can be found by shape: the
// trailing amounts are debit, credit and balance, the date is found by
// pattern and the teller code is picked out of what remains.
//
// Rows come out as [date, description, teller, debit, credit, balance].
type AmountRowStrategy struct {
	// FromText reads page text lines instead of table rows.
	FromText bool
	MinCells int
	Date     *regexp.Regexp
	Amount   *regexp.Regexp
	IsHeader LineFilter
}

func (s AmountRowStrategy) Name() string {
	if s.FromText {
		return "amount-text"
	}
	return "amount-table"
}

func (s AmountRowStrategy) Extract(scan PageScan) []models.RawRow {
	var rows []models.RawRow
	if s.FromText {
		for _, line := range pageLines(scan.Page.Text) {
			if row, ok := s.parse(line, nil, scan.Layout); ok {
				rows = append(rows, row)
			}
		}
		return rows
	}

	for _, table := range scan.Page.Tables {
		for _, tr := range table {
			if len(tr) < s.MinCells {
				continue
			}
			text := strings.TrimSpace(strings.Join(tr.Strings(), " "))
			if row, ok := s.parse(text, tr, scan.Layout); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func (s AmountRowStrategy) parse(text string, cells models.TableRow, layout models.ColumnLayout) (models.RawRow, bool) {
	if s.IsHeader.skip(text) {
		return nil, false
	}
	date := s.Date.FindString(text)
	if date == "" {
		return nil, false
	}
	amounts := s.Amount.FindAllString(text, -1)
	if len(amounts) == 0 {
		return nil, false
	}

	var debit, credit, balance string
	n := len(amounts)
	switch {
	case n >= 3:
		debit, credit, balance = amounts[n-3], amounts[n-2], amounts[n-1]
	case n == 2:
		credit, balance = amounts[0], amounts[1]
		if layoutColumn(amounts[0], cells, layout) == models.LayoutDebit {
			debit, credit = credit, ""
		}
	default:
		balance = amounts[0]
	}

	rest := strings.Replace(text, date, "", 1)
	for _, a := range amounts {
		rest = strings.Replace(rest, a, "", 1)
	}
	description, teller := splitTeller(strings.Fields(rest))

	return models.RawRow{date, description, teller, debit, credit, balance}, true
}

// layoutColumn tells whether the cell holding amount sits under the debit
// or the credit header. It returns "" when that cannot be decided.
func layoutColumn(amount string, cells models.TableRow, layout models.ColumnLayout) string {
	if !layout.Has(models.LayoutDebit) || !layout.Has(models.LayoutCredit) {
		return ""
	}
	for _, c := range cells {
		if c.X <= 0 || !strings.Contains(c.Text(), amount) {
			continue
		}
		if math.Abs(c.X-layout[models.LayoutDebit]) < math.Abs(c.X-layout[models.LayoutCredit]) {
			return models.LayoutDebit
		}
		return models.LayoutCredit
	}
	return ""
}

// splitTeller picks the teller code out of the leftover tokens: the last
// all-caps token of at least four characters, or failing that the last
// token when there is more than one.
func splitTeller(parts []string) (description, teller string) {
	for i := len(parts) - 1; i >= 0; i-- {
		if len(parts[i]) >= 4 && isUpperToken(parts[i]) {
			teller = parts[i]
			break
		}
	}
	if teller == "" {
		if len(parts) > 1 {
			return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
		}
		return strings.Join(parts, " "), ""
	}

	kept := parts[:0:0]
	for _, p := range parts {
		if p != teller {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " "), teller
}

// isUpperToken is true when the token has letters and none are lower case.
func isUpperToken(s string) bool {
	letters := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			letters = true
		}
	}
	return letters
}
