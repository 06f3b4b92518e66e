package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

func TestAssemble(t *testing.T) {
	in := []models.Record{
		{"01/01", "A", "1,00"},
		{"", "", ""},
		{"02/01", "B", "2,00"},
		{"01/01", "A", "1,00"},
		{"01/01", "A", "1,00 "},
		nil,
	}

	got := Assemble(in)
	assert.Equal(t, []models.Record{
		{"01/01", "A", "1,00"},
		{"02/01", "B", "2,00"},
		{"01/01", "A", "1,00 "},
	}, got)
}

func TestAssemble_SeparatorDoesNotMerge(t *testing.T) {
	got := Assemble([]models.Record{{"a b", "c"}, {"a", "b c"}})
	assert.Len(t, got, 2)
}

func TestApplyTotals(t *testing.T) {
	st := &models.Statement{
		Columns:  []string{"Debit", "Credit"},
		Metadata: models.NewMetadata(),
		Records: []models.Record{
			{"222.432,00", ""},
			{"2.662.608,00", ""},
			{"", "196.000,00"},
			{"n/a", ""},
		},
	}

	applyTotals(st, []TotalRule{
		{Key: KeyTotalDebit, Column: "Debit"},
		{Key: KeyTotalCredit, Column: "Credit"},
		{Key: "Missing", Column: "Nope"},
	})

	assert.Equal(t, map[string]string{
		KeyTotalDebit:   "2.885.040,00",
		KeyTotalCredit:  "196.000,00",
		KeyTransactions: "4",
	}, st.Metadata.Map())
}
