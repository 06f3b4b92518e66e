package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

func extract(e MetadataExtractor, lines ...string) *models.Metadata {
	m := models.NewMetadata()
	e.Extract(strings.Join(lines, "\n"), Normalizer{}, m)
	return m
}

func get(m *models.Metadata, key string) string {
	v, _ := m.Get(key)
	return v
}

func TestMetadataExtractor_Separator(t *testing.T) {
	e := MetadataExtractor{Rules: []MetadataRule{
		{Key: "Branch", Labels: []string{"Branch"}},
		{Key: "Name", Labels: []string{"Name"}, Last: true},
	}}

	m := extract(e,
		"Branch Office",
		"Branch : KC Sudirman: Lt. 2",
		"Print Name (as on card): BUDI",
	)
	assert.Equal(t, "KC Sudirman: Lt. 2", get(m, "Branch"), "value starts after the first separator")
	assert.Equal(t, "BUDI", get(m, "Name"))
}

func TestMetadataExtractor_SeparatorMustFollowLabel(t *testing.T) {
	e := MetadataExtractor{Rules: []MetadataRule{{Key: "Branch", Labels: []string{"Branch"}}}}
	m := extract(e, "10:00 Branch office closed")
	assert.False(t, m.Has("Branch"))
}

func TestMetadataExtractor_LaterLineOverwrites(t *testing.T) {
	e := MetadataExtractor{Rules: []MetadataRule{
		{Key: "Period", Labels: []string{"Periode"}},
		{Key: "Holder", From: 0, Once: true, Accept: func(l string) bool { return strings.HasPrefix(l, "Nama") }},
	}}
	m := extract(e,
		"Nama A",
		"Periode : Januari",
		"Nama B",
		"Periode : Februari",
	)
	assert.Equal(t, "Februari", get(m, "Period"))
	assert.Equal(t, "Nama A", get(m, "Holder"), "once keeps the first value")
	assert.Equal(t, []string{"Holder", "Period"}, m.Keys())
}

func TestMetadataExtractor_ExclusiveFirstRuleWins(t *testing.T) {
	e := MetadataExtractor{Exclusive: true, Rules: []MetadataRule{
		{Key: "Opening", Labels: []string{"Saldo Awal"}},
		{Key: "Balance", Labels: []string{"Saldo"}},
	}}
	m := extract(e, "Saldo Awal : 10")
	assert.Equal(t, "10", get(m, "Opening"))
	assert.False(t, m.Has("Balance"))
}

func TestMetadataExtractor_EveryRulePerLine(t *testing.T) {
	e := MetadataExtractor{Rules: []MetadataRule{
		{Key: "Opening", Labels: []string{"Saldo Awal"}},
		{Key: "Balance", Labels: []string{"Saldo"}},
	}}
	m := extract(e, "Saldo Awal : 10")
	assert.Equal(t, "10", get(m, "Opening"))
	assert.Equal(t, "10", get(m, "Balance"))
}

func TestMetadataExtractor_BRIMergedHeaderLine(t *testing.T) {
	m := extract(newBRIPipeline().Header,
		"Kepada Yth. / To : No. Rekening / Account No : 012301000123301",
		"SITI AMINAH",
		"Nama Produk / Product Name : BritAma",
	)
	assert.Equal(t, "012301000123301", get(m, KeyAccount))
	assert.Equal(t, "SITI AMINAH", get(m, KeyHolder))
	assert.Equal(t, "BritAma", get(m, KeyProduct))
}

func TestMetadataExtractor_BCAHolderSkipsCurrencyLine(t *testing.T) {
	lines := []string{"", "", "", "", "", "", "MATA UANG : IDR", "BUDI SANTOSO WIJAYA"}
	m := extract(newBCAPipeline().Header, lines...)
	assert.Equal(t, "IDR", get(m, KeyCurrency))
	assert.Equal(t, "BUDI SANTOSO WIJAYA", get(m, KeyHolder))
}

func TestMetadataExtractor_RuleOptions(t *testing.T) {
	tests := []struct {
		name  string
		rule  MetadataRule
		lines []string
		want  string
		found bool
	}{
		{
			name:  "fold",
			rule:  MetadataRule{Key: "k", Labels: []string{"no. rekening"}, Fold: true},
			lines: []string{"NO. REKENING : 123"},
			want:  "123",
			found: true,
		},
		{
			name:  "without fold is case sensitive",
			rule:  MetadataRule{Key: "k", Labels: []string{"no. rekening"}},
			lines: []string{"NO. REKENING : 123"},
		},
		{
			name:  "exclude",
			rule:  MetadataRule{Key: "k", Labels: []string{"Account"}, Exclude: []string{"Statement"}},
			lines: []string{"Account Statement : 2024"},
		},
		{
			name:  "prefix",
			rule:  MetadataRule{Key: "k", Labels: []string{"Date"}, Prefix: true},
			lines: []string{"Print Date : today", "Date : 2024"},
			want:  "2024",
			found: true,
		},
		{
			name:  "next line",
			rule:  MetadataRule{Key: "k", Labels: []string{"Kepada Yth"}, NextLine: true},
			lines: []string{"Kepada Yth.", "  SITI AMINAH  "},
			want:  "SITI AMINAH",
			found: true,
		},
		{
			name:  "next line missing",
			rule:  MetadataRule{Key: "k", Labels: []string{"Kepada Yth"}, NextLine: true},
			lines: []string{"Kepada Yth."},
		},
		{
			name:  "pattern",
			rule:  MetadataRule{Key: "k", Labels: []string{"Rekening"}, Pattern: firstRun},
			lines: []string{"Rekening 0012 (IDR)"},
			want:  "0012",
			found: true,
		},
		{
			name:  "pattern without match",
			rule:  MetadataRule{Key: "k", Labels: []string{"Rekening"}, Pattern: firstRun},
			lines: []string{"Rekening : -"},
		},
		{
			name:  "fixed",
			rule:  MetadataRule{Key: "k", Labels: []string{"MATA UANG"}, Fixed: "IDR"},
			lines: []string{"MATA UANG : RUPIAH"},
			want:  "IDR",
			found: true,
		},
		{
			name:  "window",
			rule:  MetadataRule{Key: "k", From: 1, To: 2},
			lines: []string{"zero", "one", "two"},
			want:  "one",
			found: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := extract(MetadataExtractor{Rules: []MetadataRule{tt.rule}}, tt.lines...)
			got, ok := m.Get("k")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataExtractor_AmountAndMaxLines(t *testing.T) {
	e := MetadataExtractor{
		MaxLines: 2,
		Rules: []MetadataRule{
			{Key: KeyOpening, Labels: []string{"Opening Balance"}, Amount: true},
			{Key: KeyClosing, Labels: []string{"Closing Balance"}, Amount: true},
		},
	}
	m := extract(e,
		"Opening Balance : IDR 1,000,000.00",
		"",
		"Closing Balance : 2,000,000.00",
	)
	assert.Equal(t, "1.000.000,00", get(m, KeyOpening))
	assert.False(t, m.Has(KeyClosing), "line past the limit is not read")
}
