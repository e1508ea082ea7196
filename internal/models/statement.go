package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether a statement moved money into or out of the account.
type Direction string

const (
	Credit Direction = "Credit"
	Debit  Direction = "Debit"
)

// Category is the statement phrase that opens a transaction's free-text block.
// The values are the literal phrases printed by the bank (accents included);
// an unrecognized phrase is carried through verbatim as the category.
type Category string

const (
	CategoryBuy               Category = "Achat"
	CategoryDividend          Category = "Dividende"
	CategoryCard              Category = "Paiement carte de débit"
	CategoryTransferFrom      Category = "Virement de"
	CategoryTransferTo        Category = "Virement à"
	CategoryInterests         Category = "Intérêts créditeurs"
	CategoryExchange          Category = "Échange de devises"
	CategoryAutoExchange      Category = "Change de devises automatique"
	CategorySavingsDeposit    Category = "Dépôt d'épargne"
	CategorySavingsWithdrawal Category = "Retrait d'épargne"
	CategoryCapitalGain       Category = "Gain en capital"
	CategoryCardRefund        Category = "Remboursement carte de debit"
	CategoryUnknown           Category = ""
)

// Statement is one parsed transaction line.
//
// Amount is always non-negative; the sign is applied at render time from
// Direction. Balance is the running balance after this transaction.
type Statement struct {
	Date      time.Time       `json:"date"`
	ValueDate time.Time       `json:"valueDate"`
	Category  Category        `json:"category"`
	Direction Direction       `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Payee     string          `json:"payee"`
	Memo      string          `json:"memo"`
	// Reference is the bank-printed transaction id, or a content hash of the
	// other fields when the statement prints none. Never empty.
	Reference string `json:"reference"`
}

// SignedAmount returns the amount with the direction's sign applied.
func (s Statement) SignedAmount() decimal.Decimal {
	if s.Direction == Debit {
		return s.Amount.Neg()
	}
	return s.Amount
}

// Header is the per-currency summary block of one statement section.
type Header struct {
	Currency     string          `json:"currency"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	InitBalance  decimal.Decimal `json:"initBalance"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
	CreditSum    decimal.Decimal `json:"creditSum"`
	DebitSum     decimal.Decimal `json:"debitSum"`
}

// ParsedFile is the validated result of one parse: the currency header plus
// the statements in printed (chronological) order.
type ParsedFile struct {
	Header     Header      `json:"header"`
	Statements []Statement `json:"statements"`
}
