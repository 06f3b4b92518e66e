package extractor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
	"github.com/tsawler/tabula/tables"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// PDFDocument is an open statement PDF. It must be closed.
type PDFDocument struct {
	closer   io.Closer // nil for in-memory documents
	reader   *pdf.Reader
	pages    int
	detector tables.Detector
	log      logrus.FieldLogger
	seen     []models.PageContent // text of pages served so far
}

// Open opens the PDF at path.
func Open(path string) (doc *PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("PDF library crashed opening %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	doc, err = newDocument(r, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.log = doc.log.WithField("file", path)
	return doc, nil
}

// OpenBytes reads a PDF held in memory, such as an upload.
func OpenBytes(data []byte) (doc *PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return newDocument(r, nil)
}

func newDocument(r *pdf.Reader, closer io.Closer) (*PDFDocument, error) {
	n := r.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	det, err := newTableDetector()
	if err != nil {
		return nil, err
	}
	return &PDFDocument{
		closer:   closer,
		reader:   r,
		pages:    n,
		detector: det,
		log:      logrus.StandardLogger(),
	}, nil
}

// SetLogger replaces the document's logger.
func (d *PDFDocument) SetLogger(log logrus.FieldLogger) {
	d.log = log
}

func (d *PDFDocument) PageCount() int { return d.pages }

// Page returns the text, words and detected tables of page n (1-based).
func (d *PDFDocument) Page(n int) (content models.PageContent, err error) {
	if n < 1 || n > d.pages {
		return content, fmt.Errorf("page %d out of range 1..%d", n, d.pages)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed on page %d: %v", n, r)
		}
	}()

	content.Number = n
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return content, nil
	}

	c := p.Content()
	runs := groupRuns(c.Text)
	content.Words = toWords(runs)
	content.Text = layoutText(runs)
	content.Tables = d.detectTables(runs, c.Rect)
	d.seen = append(d.seen, models.PageContent{Number: n, Text: content.Text})

	d.log.WithFields(logrus.Fields{
		"page":   n,
		"words":  len(content.Words),
		"tables": len(content.Tables),
	}).Debug("page extracted")
	return content, nil
}

// Readable reports whether the pages read so far carry usable text. A
// false result usually means a scanned statement.
func (d *PDFDocument) Readable() bool {
	return Readable(d.seen)
}

// Close releases the underlying file. Safe to call more than once.
func (d *PDFDocument) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}
