package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

func sampleStatement() models.Statement {
	return models.Statement{
		Date:      time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		ValueDate: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
		Category:  models.CategoryBuy,
		Direction: models.Debit,
		Amount:    decimal.RequireFromString("20.00"),
		Balance:   decimal.RequireFromString("980.00"),
		Payee:     "Achat AAPL",
		Memo:      "Achat AAPL Quantité: 1",
	}
}

func TestContentHashDeterministic(t *testing.T) {
	a := contentHash(sampleStatement())
	b := contentHash(sampleStatement())
	if a != b {
		t.Errorf("same record hashed differently: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestContentHashChangesWithFields(t *testing.T) {
	base := contentHash(sampleStatement())

	mutations := map[string]func(*models.Statement){
		"date":      func(s *models.Statement) { s.Date = s.Date.AddDate(0, 0, 1) },
		"valueDate": func(s *models.Statement) { s.ValueDate = s.ValueDate.AddDate(0, 0, 1) },
		"category":  func(s *models.Statement) { s.Category = models.CategoryDividend },
		"direction": func(s *models.Statement) { s.Direction = models.Credit },
		"amount":    func(s *models.Statement) { s.Amount = decimal.RequireFromString("20.01") },
		"balance":   func(s *models.Statement) { s.Balance = decimal.RequireFromString("980.01") },
		"payee":     func(s *models.Statement) { s.Payee = "Achat MSFT" },
		"memo":      func(s *models.Statement) { s.Memo = "other memo" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := sampleStatement()
			mutate(&s)
			if contentHash(s) == base {
				t.Errorf("changing %s did not change the digest", name)
			}
		})
	}
}
