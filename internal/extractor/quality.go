package extractor

import (
	"strings"
	"unicode"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// textQuality returns the share of runes in pages that are plain ASCII
// letters, digits, whitespace or common punctuation. Fonts with identity
// encodings decode into accented garbage, which this catches.
func textQuality(pages []models.PageContent) float64 {
	total, readable := 0, 0
	for _, p := range pages {
		for _, r := range p.Text {
			total++
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.IsPunct(r)) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// statementWords turn up on every supported statement.
var statementWords = []string{
	"rekening", "saldo", "tanggal", "periode", "mutasi", "transaksi",
	"debet", "debit", "kredit", "credit", "account", "balance", "date",
}

// Readable reports whether the extracted text looks like a statement
// rather than an image-only scan or undecodable fonts: more than 50
// characters, mostly plain ASCII, and at least one statement word.
func Readable(pages []models.PageContent) bool {
	n := 0
	var b strings.Builder
	for _, p := range pages {
		t := strings.TrimSpace(p.Text)
		n += len(t)
		b.WriteString(strings.ToLower(t))
		b.WriteByte(' ')
	}
	if n <= 50 || textQuality(pages) <= 0.6 {
		return false
	}
	combined := b.String()
	for _, w := range statementWords {
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}
