package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// run is a word assembled from the glyphs the PDF library reports.
type run struct {
	text string
	x, y float64
	w    float64
	size float64
	font string
}

func (r run) right() float64 { return r.x + r.w }

const (
	// lineTolerance is how far apart two baselines may be and still
	// count as the same printed line.
	lineTolerance = 2.0
	// minColumnGap is the smallest horizontal gap rendered as a column
	// break in page text.
	minColumnGap = 6.0
)

// groupRuns assembles glyphs into words, ordered top to bottom then left to
// right. A space glyph or a gap wider than a fraction of the font size ends
// a word.
func groupRuns(glyphs []pdf.Text) [][]run {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	// PDF y grows upwards.
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > lineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]run
	var line []run
	var cur *run
	lineY := math.Inf(1)

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.text) != "" {
			line = append(line, *cur)
		}
		cur = nil
	}

	for _, g := range sorted {
		if math.Abs(g.Y-lineY) > lineTolerance {
			flush()
			if len(line) > 0 {
				lines = append(lines, line)
			}
			line, lineY = nil, g.Y
		}
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if cur != nil && g.X-cur.right() > wordGap(g.FontSize) {
			flush()
		}
		if cur == nil {
			cur = &run{x: g.X, y: g.Y, size: g.FontSize, font: g.Font}
		}
		cur.text += g.S
		cur.w = math.Max(cur.w, g.X+g.W-cur.x)
	}
	flush()
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func wordGap(size float64) float64 {
	if size <= 0 {
		return 1
	}
	return size * 0.25
}

func toWords(lines [][]run) []models.Word {
	var words []models.Word
	for _, line := range lines {
		for _, r := range line {
			words = append(words, models.Word{Text: r.text, X: r.x, Y: r.y})
		}
	}
	return words
}

// layoutText renders lines as text. Wide gaps between words become two
// spaces so column boundaries survive in the plain text.
func layoutText(lines [][]run) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for i, r := range line {
			if i > 0 {
				if r.x-line[i-1].right() > math.Max(r.size, minColumnGap) {
					b.WriteString("  ")
				} else {
					b.WriteByte(' ')
				}
			}
			b.WriteString(r.text)
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}
