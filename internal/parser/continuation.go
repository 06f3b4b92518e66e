package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// ContinuationStrategy joins a short-dated line with the lines that follow
// it until the next dated line or a sentinel, then segments the joined
// text. Rows come out as [date, description, code, mutation, balance].
type ContinuationStrategy struct {
	// Start must capture the date in group 1 and the rest of the line in
	// group 2.
	Start    *regexp.Regexp
	Sentinel LineFilter
	Skip     LineFilter
	Amount   *regexp.Regexp
	// Code captures a marker in group 1 and its number in group 2.
	Code *regexp.Regexp
}

func (s ContinuationStrategy) Name() string { return "continuation-join" }

func (s ContinuationStrategy) Extract(scan PageScan) []models.RawRow {
	lines := pageLines(scan.Page.Text)
	var rows []models.RawRow

	for i := 0; i < len(lines); {
		line := lines[i]
		i++
		if s.Skip.skip(line) {
			continue
		}
		m := s.Start.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		unit := []string{m[2]}
		for i < len(lines) {
			next := lines[i]
			if s.Start.MatchString(next) || s.Sentinel.skip(next) {
				break
			}
			if !s.Skip.skip(next) {
				unit = append(unit, next)
			}
			i++
		}
		if row, ok := s.segment(m[1], strings.Join(unit, " ")); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// segment splits a joined unit. The last amount is the balance and the one
// before it the mutation; with a single amount only the balance is known.
// A unit without any amount is not a transaction.
func (s ContinuationStrategy) segment(date, text string) (models.RawRow, bool) {
	var mutation, balance string
	amounts := s.Amount.FindAllString(text, -1)
	switch {
	case len(amounts) == 0:
		return nil, false
	case len(amounts) >= 2:
		mutation, balance = amounts[len(amounts)-2], amounts[len(amounts)-1]
	case len(amounts) == 1:
		balance = amounts[0]
	}

	rest := text
	for _, a := range amounts {
		rest = strings.Replace(rest, a, "", 1)
	}

	var code string
	if s.Code != nil {
		if loc := s.Code.FindStringSubmatchIndex(rest); loc != nil {
			code = rest[loc[2]:loc[3]] + " " + rest[loc[4]:loc[5]]
			rest = rest[:loc[0]] + " " + rest[loc[1]:]
		}
	}

	return models.RawRow{date, strings.Join(strings.Fields(rest), " "), code, mutation, balance}, true
}
