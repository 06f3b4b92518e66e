package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// AnchorStrategy handles lines that open with a full timestamp and close
// with "<currency> <amount> <direction> <balance>". The line is read from
// the right because those trailing tokens are the reliable fixed points;
// the description is whatever sits between the reference and the currency.
//
// Rows come out as [date, reference, description, currency, amount,
// direction, balance].
type AnchorStrategy struct {
	Date       *regexp.Regexp
	Currency   string
	Directions []string
	Skip       LineFilter
}

const anchorMinTokens = 5

func (s AnchorStrategy) Name() string { return "anchor-tokenizer" }

func (s AnchorStrategy) Extract(scan PageScan) []models.RawRow {
	var rows []models.RawRow
	for _, line := range pageLines(scan.Page.Text) {
		if s.Skip.skip(line) {
			continue
		}
		if row, ok := s.parseLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s AnchorStrategy) parseLine(line string) (models.RawRow, bool) {
	loc := s.Date.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}
	date := line[loc[2]:loc[3]]
	parts := strings.Fields(line[loc[1]:])
	if len(parts) < anchorMinTokens {
		return nil, false
	}

	n := len(parts)
	balance, direction, amount, currency := parts[n-1], parts[n-2], parts[n-3], parts[n-4]
	if !looksNumeric(balance) || !s.isDirection(direction) || !looksNumeric(amount) || !strings.EqualFold(currency, s.Currency) {
		return nil, false
	}

	return models.RawRow{
		date,
		parts[0],
		strings.Join(parts[1:n-4], " "),
		strings.ToUpper(currency),
		amount,
		strings.ToUpper(direction),
		balance,
	}, true
}

func (s AnchorStrategy) isDirection(tok string) bool {
	for _, d := range s.Directions {
		if strings.EqualFold(tok, d) {
			return true
		}
	}
	return false
}
