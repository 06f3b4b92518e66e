package parser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

var bcaColumns = []string{"Date", "Description", "BranchCode", "Mutation", "Balance"}

var (
	bcaStart  = regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+)$`)
	bcaCode   = regexp.MustCompile(`\b(DB|DR|CR)\s?(\d+)\b`)
	bcaPeriod = regexp.MustCompile(`(?i)([A-Z]+\s+\d{4})`)
)

var bcaSkip = anyFilter(
	func(line string) bool {
		up := strings.ToUpper(line)
		return strings.Contains(up, "TANGGAL") && strings.Contains(up, "KETERANGAN")
	},
	containsAll("REKENING GIRO"),
	containsAll("Bersambung"),
)

func bcaOpeningBalance(line string) bool {
	return strings.HasPrefix(line, "SALDO AWAL")
}

// newBCAPipeline joins wrapped descriptions under each DD/MM line and reads
// the trailing mutation and balance.
func newBCAPipeline() *Pipeline {
	return &Pipeline{
		Bank:       models.BankBCA,
		Name:       "Bank Central Asia",
		Columns:    bcaColumns,
		RawColumns: 5,
		Strategies: []RowStrategy{
			ContinuationStrategy{
				Start:    bcaStart,
				Sentinel: bcaOpeningBalance,
				Skip:     bcaSkip,
				Amount:   usAmount,
				Code:     bcaCode,
			},
		},
		Header: MetadataExtractor{
			MaxLines: 40,
			Rules: []MetadataRule{
				{Key: KeyAccount, Labels: []string{"NO. REKENING", "NO.REKENING"}, Fold: true, Pattern: firstRun},
				{Key: KeyPeriod, Labels: []string{"PERIODE"}, Fold: true, Pattern: bcaPeriod},
				{Key: KeyCurrency, Labels: []string{"MATA UANG"}, Fold: true, Fixed: "IDR",
					Accept: func(line string) bool { return strings.Contains(line, "IDR") }},
				// The holder name sits unlabelled inside the address box.
				{Key: KeyHolder, From: 6, To: 15, Once: true, Fold: true,
					Exclude: []string{"REKENING", "HALAMAN", "PERIODE", "NO.", "CATATAN", "MATA UANG"},
					Accept:  func(line string) bool { return len(line) > 10 }},
			},
		},
		Normalizer: Normalizer{DropZero: true},
		Cleanup:    cleanBCA,
		Totals:     []TotalRule{{Key: KeyTotalMutation, Column: "Mutation"}},
	}
}

func cleanBCA(raw models.RawRow, n Normalizer, _ logrus.FieldLogger) models.Record {
	r := models.Record(append([]string(nil), raw...))
	sanitizeAll(r, 0, 1, 2)
	normalizeAll(r, n, 3, 4)
	return r
}
