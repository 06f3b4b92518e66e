package parser

import (
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

var briColumns = []string{"Date", "Description", "Teller", "Debit", "Credit", "Balance"}

var (
	briDate   = regexp.MustCompile(`\d{2}/\d{2}/\d{2,4}(?:\s+\d{2}:\d{2}:\d{2})?`)
	usAmount  = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d{2})`)
	briPeriod = regexp.MustCompile(`(\d{2}/\d{2}/\d{2,4}\s*-\s*\d{2}/\d{2}/\d{2,4})`)
	firstRun  = regexp.MustCompile(`(\d+)`)
)

var briHeader = anyFilter(
	containsAll("Tanggal Transaksi"),
	containsAll("Transaction Date"),
	containsAll("Debet", "Kredit", "Saldo"),
)

// newBRIPipeline reads the six-column teller layout. Column positions come
// from the page-1 headers so a lone mutation amount lands in the right
// column on later pages.
func newBRIPipeline() *Pipeline {
	rows := AmountRowStrategy{MinCells: 6, Date: briDate, Amount: usAmount, IsHeader: briHeader}
	lines := rows
	lines.FromText = true

	return &Pipeline{
		Bank:       models.BankBRI,
		Name:       "Bank Rakyat Indonesia",
		Columns:    briColumns,
		RawColumns: 6,
		Strategies: []RowStrategy{rows, lines},
		Layout: func(first models.PageContent) models.ColumnLayout {
			return BuildColumnLayout(first.Words)
		},
		Header: MetadataExtractor{Rules: []MetadataRule{
			{Key: KeyHolder, Labels: []string{"Kepada Yth", "To :"}, NextLine: true},
			{Key: KeyAccount, Labels: []string{"No. Rekening", "Account No"}, Pattern: firstRun},
			{Key: KeyPeriod, Labels: []string{"Periode Transaksi", "Transaction Period"}, Pattern: briPeriod},
			{Key: KeyProduct, Labels: []string{"Nama Produk", "Product Name"}},
		}},
		Normalizer: Normalizer{DropZero: true},
		Cleanup:    cleanBRI,
		Totals: []TotalRule{
			{Key: KeyTotalDebit, Column: "Debit"},
			{Key: KeyTotalCredit, Column: "Credit"},
		},
	}
}

func cleanBRI(raw models.RawRow, n Normalizer, log logrus.FieldLogger) models.Record {
	r := models.Record(append([]string(nil), raw...))
	sanitizeAll(r, 0, 1, 2)
	normalizeAll(r, n, 3, 4, 5)
	r[3], r[4] = exclusive("", r[3], r[4], log)
	return r
}
