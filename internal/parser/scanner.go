package parser

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// openingBalanceLabel marks the non-transaction row that restates the
// opening balance at the top of a section's table.
const openingBalanceLabel = "Solde d'ouverture "

// indexOfFirstStatement locates the transaction table on a page by its
// column header runs and returns the position of the first record, or -1
// when the page carries no table.
func indexOfFirstStatement(tokens []string) int {
	for idx := 0; idx+6 < len(tokens); idx++ {
		if tokens[idx] == "DATE" &&
			tokens[idx+1] == "INFORMATION" &&
			tokens[idx+5] == "DATE VALEUR" &&
			tokens[idx+6] == "SOLDE (" {
			return idx + 9
		}
	}
	return -1
}

// extractOneStatement tries to read one transaction starting at idx.
//
// A record starts at a date token. From there the scanner slides a four-token
// window (optional integer reference, amount, value date, balance) forward
// until it matches; everything between the start date and the window is the
// free-text information span. Returns the parsed statement (nil when idx is
// not a record start or the page ends first), the next scan position and the
// new running balance. Positions only ever advance.
func extractOneStatement(tokens []string, idx int, prevBalance decimal.Decimal) (*models.Statement, int, decimal.Decimal, error) {
	if !datePattern.MatchString(tokens[idx]) {
		// Noise token, move on
		return nil, idx + 1, prevBalance, nil
	}

	j := idx + 2
	for ; j+2 < len(tokens); j++ {
		hasRef := integerPattern.MatchString(tokens[j-1])
		amountTok := stripSeparators(tokens[j])
		balanceTok := stripSeparators(tokens[j+2])
		if !fixedPattern.MatchString(amountTok) ||
			!datePattern.MatchString(tokens[j+1]) ||
			!fixedPattern.MatchString(balanceTok) {
			continue
		}

		spanEnd := j
		if hasRef {
			spanEnd = j - 1
		}
		span := make([]string, 0, spanEnd-(idx+1))
		for _, tok := range tokens[idx+1 : spanEnd] {
			span = append(span, repairEncoding(tok))
		}
		category, payee, memo := splitInformation(span)

		amount, err := parseFixed(amountTok)
		if err != nil {
			return nil, idx, prevBalance, err
		}
		balance, err := parseFixed(balanceTok)
		if err != nil {
			return nil, idx, prevBalance, err
		}

		// The statement prints no sign; recover the direction from whichever
		// arithmetic reproduces the printed running balance, in integer cents.
		var direction models.Direction
		switch cents(balance) {
		case cents(prevBalance) + cents(amount):
			direction = models.Credit
		case cents(prevBalance) - cents(amount):
			direction = models.Debit
		default:
			return nil, idx, prevBalance, &ReconcileError{
				PreviousBalance: prevBalance,
				Amount:          amount,
				Balance:         balance,
			}
		}

		date, err := parseStatementDate(tokens[idx])
		if err != nil {
			return nil, idx, prevBalance, err
		}
		valueDate, err := parseStatementDate(tokens[j+1])
		if err != nil {
			return nil, idx, prevBalance, err
		}

		stmt := &models.Statement{
			Date:      date,
			ValueDate: valueDate,
			Category:  category,
			Direction: direction,
			Amount:    amount.Abs(),
			Balance:   balance,
			Payee:     payee,
			Memo:      memo,
		}
		if hasRef {
			stmt.Reference = tokens[j-1]
		} else {
			stmt.Reference = contentHash(*stmt)
		}
		return stmt, j + 3, balance, nil
	}

	// Ran out of tokens without completing the window: no further record
	// starts at this date.
	return nil, len(tokens), prevBalance, nil
}

// scanPage extracts every transaction on one page, threading the running
// balance through each record. The scan is forward-only over the flattened
// token sequence.
func scanPage(tokens []string, prevBalance decimal.Decimal) ([]models.Statement, decimal.Decimal, error) {
	idx := indexOfFirstStatement(tokens)
	if idx < 0 {
		logrus.Debugf("page has no transaction table")
		return nil, prevBalance, nil
	}
	if idx+1 < len(tokens) && tokens[idx+1] == openingBalanceLabel {
		// Opening balance row is not a transaction
		idx += 3
	}

	var statements []models.Statement
	for idx < len(tokens) {
		stmt, next, balance, err := extractOneStatement(tokens, idx, prevBalance)
		if err != nil {
			return nil, prevBalance, err
		}
		idx = next
		prevBalance = balance
		if stmt != nil {
			statements = append(statements, *stmt)
		}
	}
	return statements, prevBalance, nil
}
