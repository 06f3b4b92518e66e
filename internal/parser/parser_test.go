package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

func TestNew(t *testing.T) {
	names := map[models.BankType]string{
		models.BankGeneric: "Generic",
		models.BankBSI:     "Bank Syariah Indonesia",
		models.BankBRI:     "Bank Rakyat Indonesia",
		models.BankBCA:     "Bank Central Asia",
	}
	for _, bank := range models.Banks {
		p, err := New(bank)
		require.NoError(t, err, bank)
		assert.Equal(t, names[bank], p.BankName())
	}

	_, err := New("mandiri")
	assert.Error(t, err)
}

func TestParseBank(t *testing.T) {
	tests := map[string]models.BankType{
		"generic": models.BankGeneric,
		"Default": models.BankGeneric,
		" BSI ":   models.BankBSI,
		"syariah": models.BankBSI,
		"bri":     models.BankBRI,
		"BCA":     models.BankBCA,
	}
	for in, want := range tests {
		got, err := ParseBank(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBank("mandiri")
	assert.ErrorContains(t, err, "supported: generic, bsi, bri, bca")
}

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.BankType
	}{
		{"bsi", "PT Bank Syariah Indonesia Tbk\nDate FT Number Description", models.BankBSI},
		{"bri", "PT BANK RAKYAT INDONESIA\nTanggal Transaksi Uraian Transaksi Teller", models.BankBRI},
		{"bca", "REKENING GIRO\nSALDO AWAL\nBersambung ke halaman berikut", models.BankBCA},
		{"generic", "Nama Tercetak : X\nNo. Tgl dan Waktu", models.BankGeneric},
		{"highest score wins", "klikbca\nbank rakyat indonesia\nrekening giro", models.BankBCA},
		{"tie goes to first listed", "klikbca\nbank rakyat indonesia", models.BankBRI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AutoDetect([]models.PageContent{textPage(1, tt.text)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAutoDetect_LooksAtEveryPage(t *testing.T) {
	got, err := AutoDetect([]models.PageContent{
		textPage(1, "nothing here"),
		textPage(2, "Bank Central Asia"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BankBCA, got)
}

func TestAutoDetect_Unknown(t *testing.T) {
	got, err := AutoDetect([]models.PageContent{textPage(1, "Lorem ipsum")})
	assert.ErrorIs(t, err, ErrUnknownBank)
	assert.Equal(t, models.BankGeneric, got)

	got, err = AutoDetect(nil)
	assert.ErrorIs(t, err, ErrUnknownBank)
	assert.Equal(t, models.BankGeneric, got)
}

type fakeSource struct {
	pages    []models.PageContent
	failAt   int
	pageErr  error
	closeErr error
	closed   int
}

func (f *fakeSource) PageCount() int { return len(f.pages) }

func (f *fakeSource) Page(n int) (models.PageContent, error) {
	if n == f.failAt {
		return models.PageContent{}, f.pageErr
	}
	return f.pages[n-1], nil
}

func (f *fakeSource) Close() error {
	f.closed++
	return f.closeErr
}

var bsiPage = textPage(1,
	"Bank Syariah Indonesia",
	"Date FT Number Description Amount DB/CR Balance",
	"2024-01-02 10:00:00 FT001 PAYMENT TO VENDOR IDR 1,000.00 DB 5,000.00",
)

func TestConvert_AutoDetects(t *testing.T) {
	src := &fakeSource{pages: []models.PageContent{bsiPage}}

	st, err := Convert(src, "", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, models.BankBSI, st.Bank)
	require.Len(t, st.Records, 1)
	assert.Equal(t, "1.000,00", st.Field(0, "Debit"))
	assert.Equal(t, 1, src.closed)
}

func TestConvert_ExplicitBank(t *testing.T) {
	src := &fakeSource{pages: []models.PageContent{bsiPage}}

	st, err := Convert(src, models.BankBCA, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, models.BankBCA, st.Bank)
	assert.Empty(t, st.Records)
	assert.Equal(t, 1, src.closed)
}

func TestConvert_UnknownFallsBackToGeneric(t *testing.T) {
	src := &fakeSource{pages: []models.PageContent{textPage(1, "Lorem ipsum")}}

	st, err := Convert(src, "", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, models.BankGeneric, st.Bank)
}

func TestConvert_SkipsUnreadablePage(t *testing.T) {
	boom := errors.New("corrupt page")
	src := &fakeSource{
		pages:   []models.PageContent{bsiPage, bsiPage},
		failAt:  2,
		pageErr: boom,
	}

	st, err := Convert(src, "", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, models.BankBSI, st.Bank)
	assert.Equal(t, 1, st.Pages, "the unreadable page is left out")
	assert.Len(t, st.Records, 1)
	assert.Equal(t, 1, src.closed)

	src = &fakeSource{pages: []models.PageContent{bsiPage}}
	_, err = Convert(src, "unknown", WithLogger(quietLogger()))
	assert.Error(t, err)
	assert.Equal(t, 1, src.closed)
}

func TestConvert_ReportsCloseError(t *testing.T) {
	src := &fakeSource{pages: []models.PageContent{bsiPage}, closeErr: errors.New("busy")}

	_, err := Convert(src, models.BankBSI, WithLogger(quietLogger()))
	assert.ErrorContains(t, err, "closing document: busy")
}
