package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// Pipeline is the parser for one statement layout: which strategies to try
// and in what order, how to read the header and how to clean a raw row.
type Pipeline struct {
	Bank    models.BankType
	Name    string
	Columns []string
	// RawColumns is the arity every strategy of this pipeline emits.
	RawColumns int
	Strategies []RowStrategy
	// Layout, when set, runs on page 1 before any page is scanned.
	Layout     func(first models.PageContent) models.ColumnLayout
	Header     MetadataExtractor
	Normalizer Normalizer
	Cleanup    func(raw models.RawRow, n Normalizer, log logrus.FieldLogger) models.Record
	Totals     []TotalRule
	Logger     logrus.FieldLogger
}

func (p *Pipeline) BankName() string { return p.Name }

// Parse runs the pipeline over every page in order. A page nothing could
// read adds no records; it never stops the pages after it.
func (p *Pipeline) Parse(pages []models.PageContent) (*models.Statement, error) {
	log := p.logger()
	st := &models.Statement{
		Bank:     p.Bank,
		Columns:  append([]string(nil), p.Columns...),
		Metadata: models.NewMetadata(),
		Pages:    len(pages),
	}
	if len(pages) == 0 {
		applyTotals(st, p.Totals)
		return st, nil
	}

	p.Header.Extract(pages[0].Text, p.Normalizer, st.Metadata)

	var layout models.ColumnLayout
	if p.Layout != nil {
		layout = p.Layout(pages[0])
		log.WithField("layout", layout).Debug("column layout from page 1")
	}

	var acc []models.Record
	for i, page := range pages {
		num := page.Number
		if num == 0 {
			num = i + 1
		}
		var trace models.PageTrace
		acc, trace = p.collect(acc, PageScan{Page: page, Layout: layout}, num)
		st.Trace = append(st.Trace, trace)
	}

	st.Records = Assemble(acc)
	applyTotals(st, p.Totals)
	log.WithFields(logrus.Fields{
		"pages":   len(pages),
		"rows":    len(acc),
		"records": len(st.Records),
	}).Debug("statement assembled")
	return st, nil
}

// collect appends the cleaned rows of one page to acc.
func (p *Pipeline) collect(acc []models.Record, scan PageScan, num int) ([]models.Record, models.PageTrace) {
	log := p.logger().WithField("page", num)
	trace := models.PageTrace{Page: num}

	for _, s := range p.Strategies {
		rows := runStrategy(s, scan, log)
		if len(rows) == 0 {
			continue
		}
		trace.Strategy = s.Name()
		for _, raw := range rows {
			if len(raw) != p.RawColumns {
				log.WithFields(logrus.Fields{
					"strategy": s.Name(),
					"fields":   len(raw),
					"want":     p.RawColumns,
				}).Warn("discarding row with wrong arity")
				continue
			}
			acc = append(acc, p.Cleanup(raw, p.Normalizer, log))
			trace.Rows++
		}
		break
	}

	log.WithFields(logrus.Fields{"strategy": trace.Strategy, "rows": trace.Rows}).Debug("page scanned")
	return acc, trace
}

// runStrategy shields the page loop from a strategy bug.
func runStrategy(s RowStrategy, scan PageScan, log logrus.FieldLogger) (rows []models.RawRow) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("strategy", s.Name()).Errorf("strategy crashed: %v", r)
			rows = nil
		}
	}()
	return s.Extract(scan)
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger().WithField("bank", string(p.Bank))
	}
	return p.Logger.WithField("bank", string(p.Bank))
}

// Direction markers seen in the supported layouts.
var (
	debitMarkers  = []string{"D", "DB", "DR", "DEBIT", "DEBET"}
	creditMarkers = []string{"K", "C", "CR", "KREDIT", "CREDIT"}
)

func isMarker(tok string, set []string) bool {
	tok = strings.ToUpper(strings.TrimSpace(tok))
	for _, m := range set {
		if tok == m {
			return true
		}
	}
	return false
}

// routeAmount places a single amount in the debit or credit slot according
// to its direction marker. Unknown markers count as credit.
func routeAmount(marker, amount string) (debit, credit string) {
	if isMarker(marker, debitMarkers) {
		return amount, ""
	}
	return "", amount
}

// exclusive makes sure at most one of debit and credit is filled. The
// marker decides when there is one; otherwise a zero side is dropped. If
// both sides still carry an amount the credit side is dropped.
func exclusive(marker, debit, credit string, log logrus.FieldLogger) (string, string) {
	switch {
	case debit == "" || credit == "":
		return debit, credit
	case isMarker(marker, debitMarkers):
		return debit, ""
	case isMarker(marker, creditMarkers):
		return "", credit
	case isZeroCanonical(credit):
		return debit, ""
	case isZeroCanonical(debit):
		return "", credit
	}
	log.WithFields(logrus.Fields{"debit": debit, "credit": credit}).Warn("row has both debit and credit, keeping debit")
	return debit, ""
}

// sanitizeAll cleans text fields in place by index.
func sanitizeAll(row models.Record, idx ...int) {
	for _, i := range idx {
		row[i] = Sanitize(row[i])
	}
}

// normalizeAll canonicalizes amount fields in place by index.
func normalizeAll(row models.Record, n Normalizer, idx ...int) {
	for _, i := range idx {
		row[i] = n.Normalize(row[i])
	}
}
