package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

func TestReadable(t *testing.T) {
	statement := models.PageContent{Text: "REKENING KORAN\nTanggal Keterangan Mutasi Saldo\n01/02 SETORAN TUNAI 1,000.00"}
	tests := []struct {
		name  string
		pages []models.PageContent
		want  bool
	}{
		{"statement text", []models.PageContent{statement}, true},
		{"no pages", nil, false},
		{"too short", []models.PageContent{{Text: "Saldo 1,000.00"}}, false},
		{"no statement words", []models.PageContent{{Text: strings.Repeat("lorem ipsum dolor ", 5)}}, false},
		{"undecodable glyphs", []models.PageContent{{Text: "saldo " + strings.Repeat("ÿþýüûúùø", 10)}}, false},
		{"spread over pages", []models.PageContent{{Text: strings.Repeat("x", 40)}, {Text: "Periode Januari 2024"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Readable(tt.pages))
		})
	}
}

func TestTextQuality(t *testing.T) {
	assert.Zero(t, textQuality(nil))
	assert.Equal(t, 1.0, textQuality([]models.PageContent{{Text: "Saldo: 1,000.00"}}))
	assert.InDelta(t, 0.5, textQuality([]models.PageContent{{Text: "abéü"}}), 1e-9)
}
