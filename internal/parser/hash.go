package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// contentHash derives the synthetic reference for a statement the bank
// printed no reference number for. The digest covers every field except the
// reference itself, in a fixed order, so re-parsing the same PDF always
// yields the same id.
func contentHash(s models.Statement) string {
	fields := []string{
		FormatDate(s.Date),
		FormatDate(s.ValueDate),
		string(s.Category),
		string(s.Direction),
		s.Amount.StringFixed(2),
		s.Balance.StringFixed(2),
		s.Payee,
		s.Memo,
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}
