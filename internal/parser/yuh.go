// Package parser implements the Yuh statement extraction engine: it turns
// the PDF's flat text-run layout into typed transaction records and
// cross-validates them against the totals printed in the statement.
package parser

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/extractor"
	"github.com/yuhtools/yuh2ofx/internal/models"
)

// Parser extracts one currency's statement section from a document. A
// Parser owns no state across calls; each Parse works on its own scan state
// and returns a result the caller fully owns.
type Parser struct {
	// Currency selects the statement section to extract (upper-cased).
	Currency string
	// SkipFinalBalanceCheck disables the closing-balance aggregate check.
	// Some historical statements carry a bank-side balance anomaly; the
	// debit/credit sum checks still always run.
	SkipFinalBalanceCheck bool
}

// New returns a parser for the given currency code.
func New(currency string) *Parser {
	return &Parser{Currency: strings.ToUpper(currency)}
}

// Parse extracts, reduces and validates the requested currency's statements.
// Any structural or arithmetic inconsistency fails the whole parse; no
// partial result is ever returned.
func (p *Parser) Parse(doc *extractor.Document) (*models.ParsedFile, error) {
	pages := pagesForCurrency(doc.Pages, p.Currency)
	if len(pages) == 0 {
		return nil, &CurrencyNotFoundError{Currency: p.Currency, Available: DetectCurrencies(doc)}
	}
	logrus.Debugf("currency %s: %d page(s) selected", p.Currency, len(pages))

	header, err := parseHeader(flattenPage(pages[0]))
	if err != nil {
		return nil, err
	}

	// Fold the pages into one record list, carrying the running balance
	// across page boundaries. The balance seeds from the header's opening
	// balance.
	var statements []models.Statement
	balance := header.InitBalance
	for i, page := range pages {
		pageStmts, pageBalance, err := scanPage(flattenPage(page), balance)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("page %d: %d record(s)", i+1, len(pageStmts))
		statements = append(statements, pageStmts...)
		balance = pageBalance
	}

	parsed := &models.ParsedFile{Header: *header, Statements: statements}
	if err := p.validate(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// validate recomputes the aggregate totals from the extracted records and
// compares them, cent for cent, against the header. A mismatch is fatal:
// wrong financial totals must never be emitted silently.
func (p *Parser) validate(parsed *models.ParsedFile) error {
	var debits, credits int64
	for _, stmt := range parsed.Statements {
		if stmt.Direction == models.Credit {
			credits += cents(stmt.Amount)
		} else {
			debits += cents(stmt.Amount)
		}
	}

	if debits != cents(parsed.Header.DebitSum) {
		return &ValidationError{
			Check:    "total debits",
			Expected: parsed.Header.DebitSum,
			Computed: centsToDecimal(debits),
		}
	}
	if credits != cents(parsed.Header.CreditSum) {
		return &ValidationError{
			Check:    "total credits",
			Expected: parsed.Header.CreditSum,
			Computed: centsToDecimal(credits),
		}
	}

	if p.SkipFinalBalanceCheck {
		logrus.Warn("final balance check skipped")
		return nil
	}
	if n := len(parsed.Statements); n > 0 {
		last := parsed.Statements[n-1].Balance
		if cents(last) != cents(parsed.Header.FinalBalance) {
			return &ValidationError{
				Check:    "final balance",
				Expected: parsed.Header.FinalBalance,
				Computed: last,
			}
		}
	}
	return nil
}

// FilterByDateRange returns a copy of the parsed file keeping only the
// statements whose transaction date falls inside [from, to] (inclusive,
// either bound optional) and clips the header period accordingly. The
// records themselves are not modified. Call after Parse: the aggregate
// checks only hold for the full record list.
func FilterByDateRange(parsed *models.ParsedFile, from, to *time.Time) *models.ParsedFile {
	out := &models.ParsedFile{Header: parsed.Header}
	for _, stmt := range parsed.Statements {
		if from != nil && stmt.Date.Before(startOfDay(*from)) {
			continue
		}
		if to != nil && stmt.Date.After(endOfDay(*to)) {
			continue
		}
		out.Statements = append(out.Statements, stmt)
	}
	if from != nil && out.Header.From.Before(*from) {
		out.Header.From = *from
	}
	if to != nil && out.Header.To.After(*to) {
		out.Header.To = *to
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
