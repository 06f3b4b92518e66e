package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

var genericColumns = []string{"No", "DateTime", "Reference", "Description", "Code", "Direction", "Debit", "Credit", "Balance"}

const genericFields = 9

// isGenericHeader matches the column header row of the generic table.
func isGenericHeader(joined string) bool {
	return (strings.Contains(joined, "no.") && strings.Contains(joined, "debit")) ||
		strings.Contains(joined, "tgl dan waktu")
}

// newGenericPipeline handles the numbered nine-column layout: tables first,
// text lines split on wide gaps when no table survives.
func newGenericPipeline() *Pipeline {
	return &Pipeline{
		Bank:       models.BankGeneric,
		Name:       "Generic",
		Columns:    genericColumns,
		RawColumns: genericFields,
		Strategies: []RowStrategy{
			GridTableStrategy{MinCells: genericFields, Columns: genericFields, IsHeader: isGenericHeader},
			DelimitedLineStrategy{Fields: genericFields, Skip: containsAll("Debit", "Kredit")},
		},
		Header: MetadataExtractor{Rules: []MetadataRule{
			{Key: KeyPeriod, Labels: []string{"Periode"}, Last: true},
			{Key: KeyHolder, Labels: []string{"Nama Tercetak"}, Last: true},
			{Key: KeyAccount, Labels: []string{"Nomor Rekening"}, Last: true},
		}},
		Cleanup: cleanGeneric,
		Totals: []TotalRule{
			{Key: KeyTotalDebit, Column: "Debit"},
			{Key: KeyTotalCredit, Column: "Credit"},
		},
	}
}

func cleanGeneric(raw models.RawRow, n Normalizer, log logrus.FieldLogger) models.Record {
	r := models.Record(append([]string(nil), raw...))
	sanitizeAll(r, 0, 1, 2, 3, 4, 5)
	normalizeAll(r, n, 6, 7, 8)
	r[6], r[7] = exclusive(r[5], r[6], r[7], log)
	return r
}
