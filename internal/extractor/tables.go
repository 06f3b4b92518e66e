package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// newTableDetector configures tabula's geometric detector to work from
// text alignment alone. Statement grids are often drawn without rules, so
// ruling lines are not required.
func newTableDetector() (tables.Detector, error) {
	det := tables.NewGeometricDetector()
	cfg := tables.DefaultConfig()
	cfg.UseLines = false
	cfg.UseWhitespace = true
	cfg.DetectMergedCells = false
	if err := det.Configure(cfg); err != nil {
		return nil, fmt.Errorf("configuring table detector: %w", err)
	}
	return det, nil
}

func (d *PDFDocument) detectTables(lines [][]run, rects []pdf.Rect) []models.Table {
	page := model.NewPage(0, 0)
	for _, line := range lines {
		for _, r := range line {
			page.RawText = append(page.RawText, model.TextFragment{
				Text:     r.text,
				BBox:     model.NewBBox(r.x, r.y, r.w, r.size),
				FontSize: r.size,
				FontName: r.font,
			})
		}
	}
	for _, rc := range rects {
		page.RawLines = append(page.RawLines, model.Line{
			Start:  model.Point{X: rc.Min.X, Y: rc.Min.Y},
			End:    model.Point{X: rc.Max.X, Y: rc.Max.Y},
			IsRect: true,
		})
	}

	found, err := d.detector.Detect(page)
	if err != nil {
		d.log.WithError(err).Warn("table detection failed")
		return nil
	}

	out := make([]models.Table, 0, len(found))
	for _, t := range found {
		out = append(out, convertTable(t))
	}
	return out
}

func convertTable(t *model.Table) models.Table {
	table := make(models.Table, 0, len(t.Rows))
	for _, row := range t.Rows {
		tr := make(models.TableRow, len(row))
		for i, c := range row {
			tr[i].X = c.BBox.X
			if c.Text != "" {
				text := c.Text
				tr[i].Value = &text
			}
		}
		table = append(table, tr)
	}
	return table
}
