package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// Writer serializes a statement.
type Writer interface {
	Write(out io.Writer, st *models.Statement) error
	Extension() string
	ContentType() string
}

// New returns the writer for format ("csv" or "xlsx").
func New(format string, includeHeader bool) (Writer, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "csv":
		return &CSVWriter{IncludeHeader: includeHeader}, nil
	case "xlsx", "excel":
		return &XLSXWriter{IncludeHeader: includeHeader}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q, use csv or xlsx", format)
}

// WriteToFile writes the statement to path with w.
func WriteToFile(w Writer, path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, st); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
