package parser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

var bsiColumns = []string{"Date", "Reference", "Description", "Currency", "Debit", "Credit", "Balance"}

var bsiTimestamp = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})`)

var bsiSkip = anyFilter(
	containsAll("Date", "FT Number", "Description"),
	containsAll("Account Statement"),
	func(line string) bool { return strings.HasPrefix(line, "Page ") && strings.Contains(line, "/") },
	func(line string) bool { return strings.HasPrefix(line, "Date") && strings.HasSuffix(line, "Balance") },
)

// newBSIPipeline reads one transaction per timestamped line, anchored on the
// trailing "IDR <amount> DB|CR <balance>" tokens.
func newBSIPipeline() *Pipeline {
	return &Pipeline{
		Bank:       models.BankBSI,
		Name:       "Bank Syariah Indonesia",
		Columns:    bsiColumns,
		RawColumns: 7,
		Strategies: []RowStrategy{
			AnchorStrategy{
				Date:       bsiTimestamp,
				Currency:   "IDR",
				Directions: []string{"DB", "CR"},
				Skip:       bsiSkip,
			},
		},
		Header: MetadataExtractor{
			Exclusive: true,
			Rules: []MetadataRule{
				{Key: KeyAccount, Labels: []string{"Account"}, Exclude: []string{"Statement"}},
				{Key: KeyPeriod, Labels: []string{"Date"}, Prefix: true},
				{Key: KeyOpening, Labels: []string{"Opening Balance"}, Amount: true},
				{Key: KeyClosing, Labels: []string{"Closing Balance"}, Amount: true},
				{Key: KeyPrintedDebit, Labels: []string{"Total Debit Amount"}, Amount: true},
				{Key: KeyPrintedCredit, Labels: []string{"Total Credit Amount"}, Amount: true},
				{Key: KeyBranch, Labels: []string{"Branch"}},
			},
		},
		Cleanup: cleanBSI,
		Totals: []TotalRule{
			{Key: KeyTotalDebit, Column: "Debit"},
			{Key: KeyTotalCredit, Column: "Credit"},
		},
	}
}

// cleanBSI maps [date, ref, description, currency, amount, direction,
// balance] onto the output columns, routing the amount by direction.
func cleanBSI(raw models.RawRow, n Normalizer, _ logrus.FieldLogger) models.Record {
	debit, credit := routeAmount(raw[5], n.Normalize(raw[4]))
	return models.Record{
		Sanitize(raw[0]),
		Sanitize(raw[1]),
		Sanitize(raw[2]),
		Sanitize(raw[3]),
		debit,
		credit,
		n.Normalize(raw[6]),
	}
}
