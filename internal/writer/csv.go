package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// CSVWriter writes a statement as CSV.
type CSVWriter struct {
	IncludeHeader bool
}

func (w *CSVWriter) Extension() string   { return ".csv" }
func (w *CSVWriter) ContentType() string { return "text/csv" }

// Write writes the statement in CSV format to out. Metadata, when
// included, comes first as "# label,value" rows.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	cw := csv.NewWriter(out)

	if w.IncludeHeader {
		for _, kv := range metadataRows(st) {
			if err := cw.Write([]string{"# " + kv[0], kv[1]}); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := cw.Write(st.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range st.Records {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// metadataRows lists the bank followed by every metadata entry in the
// order it was found.
func metadataRows(st *models.Statement) [][2]string {
	rows := [][2]string{{"Bank", string(st.Bank)}}
	for _, k := range st.Metadata.Keys() {
		v, _ := st.Metadata.Get(k)
		rows = append(rows, [2]string{k, v})
	}
	return rows
}
