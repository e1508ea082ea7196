package parser

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoHeader is returned when the first page of the requested currency's
// section carries no summary block. Without a header there is nothing to
// reconcile against, so the parse cannot proceed.
var ErrNoHeader = errors.New("no statement header found")

// CurrencyNotFoundError is returned when the document contains no section
// for the requested currency.
type CurrencyNotFoundError struct {
	Currency  string
	Available []string
}

func (e *CurrencyNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no statement section for currency %s (no sections found at all)", e.Currency)
	}
	return fmt.Sprintf("no statement section for currency %s (document has: %v)", e.Currency, e.Available)
}

// ReconcileError reports a single record whose amount reconciles with the
// balance delta under neither the credit nor the debit form. One such record
// invalidates the whole parse.
type ReconcileError struct {
	PreviousBalance decimal.Decimal
	Amount          decimal.Decimal
	Balance         decimal.Decimal
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf(
		"credit/debit statement not consistent: previous balance %s %s amount %s matches neither credit (%s) nor debit (%s) against printed balance %s",
		e.PreviousBalance, "±", e.Amount,
		e.PreviousBalance.Add(e.Amount), e.PreviousBalance.Sub(e.Amount), e.Balance)
}

// ValidationError reports an aggregate mismatch between the extracted
// records and the header's printed totals.
type ValidationError struct {
	Check    string
	Expected decimal.Decimal
	Computed decimal.Decimal
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("inconsistent %s: header says %s, extracted records give %s",
		e.Check, e.Expected.StringFixed(2), e.Computed.StringFixed(2))
}
