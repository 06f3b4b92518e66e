package parser

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// Parser defines the interface for statement layout parsers.
type Parser interface {
	// Parse takes the reader's page contents and returns the assembled statement.
	Parse(pages []models.PageContent) (*models.Statement, error)
	// BankName returns the human-readable bank name.
	BankName() string
}

// Option adjusts a parser built by New.
type Option func(*Pipeline)

// WithLogger routes pipeline logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.Logger = log }
}

// New returns the parser for the given bank type.
func New(bank models.BankType, opts ...Option) (Parser, error) {
	var p *Pipeline
	switch bank {
	case models.BankGeneric:
		p = newGenericPipeline()
	case models.BankBSI:
		p = newBSIPipeline()
	case models.BankBRI:
		p = newBRIPipeline()
	case models.BankBCA:
		p = newBCAPipeline()
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bank)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParseBank maps a user-supplied name onto a bank type.
func ParseBank(name string) (models.BankType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "generic", "default":
		return models.BankGeneric, nil
	case "bsi", "syariah":
		return models.BankBSI, nil
	case "bri":
		return models.BankBRI, nil
	case "bca":
		return models.BankBCA, nil
	}
	return "", fmt.Errorf("unknown bank %q, supported: generic, bsi, bri, bca", name)
}

// ErrUnknownBank is returned by AutoDetect when no fingerprint matched. The
// generic layout is returned alongside it as the fallback.
var ErrUnknownBank = errors.New("could not auto-detect bank from statement content")

var fingerprints = []struct {
	bank    models.BankType
	phrases []string
}{
	{models.BankBSI, []string{"bank syariah indonesia", "bankbsi.co.id", "ft number"}},
	{models.BankBRI, []string{"bank rakyat indonesia", "bri.co.id", "tanggal transaksi", "uraian transaksi"}},
	{models.BankBCA, []string{"bank central asia", "klikbca", "rekening giro", "saldo awal", "bersambung ke halaman"}},
	{models.BankGeneric, []string{"nama tercetak", "tgl dan waktu"}},
}

var (
	fingerprintMu      sync.Mutex
	fingerprintMatcher *ahocorasick.Matcher
	fingerprintBank    []models.BankType
)

func init() {
	var phrases []string
	for _, f := range fingerprints {
		for _, p := range f.phrases {
			phrases = append(phrases, p)
			fingerprintBank = append(fingerprintBank, f.bank)
		}
	}
	fingerprintMatcher = ahocorasick.NewStringMatcher(phrases)
}

// AutoDetect scores every layout by how many of its fingerprint phrases
// appear anywhere in the document and returns the best. Ties go to the
// layout listed first.
func AutoDetect(pages []models.PageContent) (models.BankType, error) {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(strings.ToLower(p.Text))
		b.WriteByte('\n')
	}

	fingerprintMu.Lock()
	hits := fingerprintMatcher.Match([]byte(b.String()))
	fingerprintMu.Unlock()

	scores := make(map[models.BankType]int)
	for _, idx := range hits {
		scores[fingerprintBank[idx]]++
	}

	best, bestScore := models.BankGeneric, 0
	for _, f := range fingerprints {
		if scores[f.bank] > bestScore {
			best, bestScore = f.bank, scores[f.bank]
		}
	}
	if bestScore == 0 {
		return models.BankGeneric, ErrUnknownBank
	}
	return best, nil
}

// PageSource is an open document the engine can read pages from.
type PageSource interface {
	PageCount() int
	Page(n int) (models.PageContent, error)
	Close() error
}

// Convert reads every page of src, picks the layout (auto-detecting when
// bank is empty) and parses it. A page that cannot be read is logged and
// left out. src is closed before Convert returns, whatever the outcome.
func Convert(src PageSource, bank models.BankType, opts ...Option) (st *models.Statement, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing document: %w", cerr)
		}
	}()

	log := optionLogger(opts)
	count := src.PageCount()
	pages := make([]models.PageContent, 0, count)
	for i := 1; i <= count; i++ {
		page, perr := src.Page(i)
		if perr != nil {
			log.WithField("page", i).WithError(perr).Warn("skipping unreadable page")
			continue
		}
		pages = append(pages, page)
	}

	if bank == "" {
		detected, derr := AutoDetect(pages)
		if derr != nil {
			log.WithField("fallback", detected).Warn(derr)
		}
		bank = detected
	}

	p, err := New(bank, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(pages)
}

func optionLogger(opts []Option) logrus.FieldLogger {
	var p Pipeline
	for _, opt := range opts {
		opt(&p)
	}
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}
