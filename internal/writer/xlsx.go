package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

const (
	infoSheet   = "Info"
	ledgerSheet = "Transaksi"
)

// XLSXWriter writes a workbook with the metadata on an Info sheet and the
// records on a Transaksi sheet.
type XLSXWriter struct {
	IncludeHeader bool
}

func (w *XLSXWriter) Extension() string { return ".xlsx" }
func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *XLSXWriter) Write(out io.Writer, st *models.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	first := ledgerSheet
	if w.IncludeHeader {
		first = infoSheet
	}
	if err := f.SetSheetName("Sheet1", first); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if w.IncludeHeader {
		if err := writeInfo(f, st, bold); err != nil {
			return err
		}
		if _, err := f.NewSheet(ledgerSheet); err != nil {
			return fmt.Errorf("failed to add %s sheet: %w", ledgerSheet, err)
		}
	}
	if err := writeLedger(f, st, bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeInfo(f *excelize.File, st *models.Statement, bold int) error {
	for i, kv := range metadataRows(st) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(infoSheet, cell, &[]interface{}{kv[0], kv[1]}); err != nil {
			return fmt.Errorf("failed to write info row: %w", err)
		}
	}
	if err := f.SetColStyle(infoSheet, "A", bold); err != nil {
		return fmt.Errorf("failed to style info labels: %w", err)
	}
	return f.SetColWidth(infoSheet, "A", "B", 28)
}

func writeLedger(f *excelize.File, st *models.Statement, bold int) error {
	header := make([]interface{}, len(st.Columns))
	for i, c := range st.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	if err := f.SetRowStyle(ledgerSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style ledger header: %w", err)
	}

	for i, r := range st.Records {
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write ledger row %d: %w", i+1, err)
		}
	}

	if len(st.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(st.Columns))
		if err != nil {
			return err
		}
		return f.SetColWidth(ledgerSheet, "A", last, 20)
	}
	return nil
}
