package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

// Metadata keys shared by every layout.
const (
	KeyHolder         = "Account Holder"
	KeyAccount        = "Account Number"
	KeyPeriod         = "Period"
	KeyProduct        = "Product"
	KeyCurrency       = "Currency"
	KeyBranch         = "Branch"
	KeyOpening        = "Opening Balance"
	KeyClosing        = "Closing Balance"
	KeyPrintedDebit   = "Printed Total Debit"
	KeyPrintedCredit  = "Printed Total Credit"
	KeyTotalDebit     = "Total Debit"
	KeyTotalCredit    = "Total Credit"
	KeyTotalMutation  = "Total Mutation"
	KeyTransactions   = "Transactions"
	metadataSeparator = ":"
)

// MetadataRule describes one label on the first page of a statement.
type MetadataRule struct {
	Key    string
	Labels []string
	// Exclude rejects lines containing any of these.
	Exclude []string
	// Fold compares labels and exclusions case-insensitively.
	Fold bool
	// Prefix requires the line to start with the label.
	Prefix bool
	// Last takes the value after the last separator instead of the first,
	// for labels whose own text may contain one.
	Last bool
	// Pattern, when set, replaces the separator split: the value is the
	// first capture group.
	Pattern *regexp.Regexp
	// NextLine takes the following line as the value.
	NextLine bool
	// Fixed is used as the value when the line matches.
	Fixed string
	// Amount runs the value through the normalizer.
	Amount bool
	// Once keeps the first value found.
	Once bool
	// Window limits the rule to line indexes From <= i < To.
	From, To int
	// Accept is an extra predicate on the trimmed line.
	Accept func(line string) bool
}

// MetadataExtractor scans header lines with a fixed rule set.
type MetadataExtractor struct {
	Rules    []MetadataRule
	MaxLines int
	// Exclusive stops at the first matching rule on each line. Otherwise
	// every rule is tried, so one line can carry several labels.
	Exclusive bool
}

// Extract applies the rules to text. A later line overwrites an earlier
// value unless the rule is marked Once. Labels that never match are simply
// absent.
func (e MetadataExtractor) Extract(text string, n Normalizer, into *models.Metadata) {
	lines := strings.Split(text, "\n")
	if e.MaxLines > 0 && len(lines) > e.MaxLines {
		lines = lines[:e.MaxLines]
	}

	for i := range lines {
		for _, r := range e.Rules {
			if r.Once && into.Has(r.Key) {
				continue
			}
			value, ok := r.match(lines, i)
			if !ok {
				continue
			}
			if r.Amount {
				value = n.Normalize(value)
			}
			into.Set(r.Key, value)
			if e.Exclusive {
				break
			}
		}
	}
}

func (r MetadataRule) match(lines []string, i int) (string, bool) {
	if i < r.From || (r.To > 0 && i >= r.To) {
		return "", false
	}
	line := strings.TrimSpace(lines[i])
	subject := line
	if r.Fold {
		subject = strings.ToUpper(line)
	}

	label, found := "", len(r.Labels) == 0
	for _, l := range r.Labels {
		if r.Fold {
			l = strings.ToUpper(l)
		}
		if (r.Prefix && strings.HasPrefix(subject, l)) || (!r.Prefix && strings.Contains(subject, l)) {
			label, found = l, true
			break
		}
	}
	if !found {
		return "", false
	}
	for _, x := range r.Exclude {
		if r.Fold {
			x = strings.ToUpper(x)
		}
		if strings.Contains(subject, x) {
			return "", false
		}
	}
	if r.Accept != nil && !r.Accept(line) {
		return "", false
	}

	switch {
	case r.NextLine:
		if i+1 >= len(lines) {
			return "", false
		}
		return strings.TrimSpace(lines[i+1]), true
	case r.Fixed != "":
		return r.Fixed, true
	case r.Pattern != nil:
		m := r.Pattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[len(m)-1]), true
	case label == "":
		return line, true
	}

	// The separator has to follow the label.
	rest := line
	if len(subject) == len(line) {
		rest = line[strings.Index(subject, label)+len(label):]
	}
	sep := strings.Index(rest, metadataSeparator)
	if sep < 0 {
		return "", false
	}
	if r.Last {
		sep = strings.LastIndex(rest, metadataSeparator)
	}
	return strings.TrimSpace(rest[sep+1:]), true
}
