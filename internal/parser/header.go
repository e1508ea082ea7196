package parser

import (
	"fmt"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// Token offsets of the summary fields relative to the section marker. These
// are a contract with the upstream extraction's run ordering and must be
// treated as exact: a shifted layout is a structural failure, not something
// to hunt for heuristically.
const (
	headerOffCurrency    = 1
	headerOffFrom        = 2
	headerOffInitBalance = 3
	headerOffDebitSum    = 6
	headerOffCreditSum   = 9
	headerOffTo          = 11
	headerOffFinal       = 12
)

// parseHeader extracts the currency summary block from the first page's
// flattened token sequence. The from/to tokens embed the date as their last
// ten characters ("du 01.01.2024" style labels).
func parseHeader(tokens []string) (*models.Header, error) {
	idx := -1
	for i, tok := range tokens {
		if tok == statementsMarker {
			idx = i
			break
		}
	}
	if idx < 0 || idx+headerOffFinal >= len(tokens) {
		return nil, ErrNoHeader
	}

	h := &models.Header{Currency: tokens[idx+headerOffCurrency]}

	var err error
	if h.From, err = parseStatementDate(lastN(tokens[idx+headerOffFrom], 10)); err != nil {
		return nil, fmt.Errorf("header period start: %w", err)
	}
	if h.To, err = parseStatementDate(lastN(tokens[idx+headerOffTo], 10)); err != nil {
		return nil, fmt.Errorf("header period end: %w", err)
	}
	if h.InitBalance, err = parseFixed(stripSeparators(tokens[idx+headerOffInitBalance])); err != nil {
		return nil, fmt.Errorf("header opening balance: %w", err)
	}
	if h.DebitSum, err = parseFixed(stripSeparators(tokens[idx+headerOffDebitSum])); err != nil {
		return nil, fmt.Errorf("header debit total: %w", err)
	}
	if h.CreditSum, err = parseFixed(stripSeparators(tokens[idx+headerOffCreditSum])); err != nil {
		return nil, fmt.Errorf("header credit total: %w", err)
	}

	// The printed closing balance can carry rounding artifacts; the
	// recomputed value is authoritative. The printed one is still required
	// to be present and well-formed.
	if _, err = parseFixed(stripSeparators(tokens[idx+headerOffFinal])); err != nil {
		return nil, fmt.Errorf("header closing balance: %w", err)
	}
	h.FinalBalance = roundCents(h.InitBalance.Add(h.CreditSum).Sub(h.DebitSum))

	return h, nil
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
