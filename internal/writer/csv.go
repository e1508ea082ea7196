package writer

import (
	"regexp"
	"strings"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// csvHeader is the column row expected by the portfolio tool's French CSV
// import.
const csvHeader = "Date;Type;Note;Symbole boursier;ISIN;Nom du titre;Parts;Montant brut en devise;Frais;Impôts / Taxes;Valeur;Devise de l'opération"

// Labeled sub-fields inside a security transaction's memo.
var (
	quantityPattern = regexp.MustCompile(`Quantité:\s*([0-9][0-9.,']*)`)
	pricePattern    = regexp.MustCompile(`Prix:\s*([0-9][0-9.,']*)`)
	feePattern      = regexp.MustCompile(`Commission:\s*([0-9][0-9.,']*)`)
	taxPattern      = regexp.MustCompile(`Taxe:\s*([0-9][0-9.,']*)`)
	isinPattern     = regexp.MustCompile(`ISIN:\s*([A-Z]{2}[A-Z0-9]{9}[0-9])`)
)

// CSVGenerator renders a parsed statement file as a semicolon-delimited CSV
// for the portfolio-tracking tool. Buy and dividend rows carry the security
// details parsed out of the memo's labeled sub-fields; everything else maps
// to a plain deposit or withdrawal.
type CSVGenerator struct{}

func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

func (g *CSVGenerator) Generate(parsed *models.ParsedFile) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, stmt := range parsed.Statements {
		b.WriteString(strings.Join(g.row(stmt, parsed.Header.Currency), ";"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *CSVGenerator) row(stmt models.Statement, currency string) []string {
	date := stmt.Date.UTC().Format("2006-01-02")
	value := decimalComma(stmt.Amount.StringFixed(2))

	switch stmt.Category {
	case models.CategoryBuy, models.CategoryDividend:
		rowType := "Achat"
		if stmt.Category == models.CategoryDividend {
			rowType = "Dividendes"
		}
		return []string{
			date,
			rowType,
			csvField(stmt.Memo),
			tickerFromPayee(stmt),
			matchGroup(isinPattern, stmt.Memo),
			"", // security name is not printed in the statement
			amountField(quantityPattern, stmt.Memo),
			amountField(pricePattern, stmt.Memo),
			amountField(feePattern, stmt.Memo),
			amountField(taxPattern, stmt.Memo),
			value,
			currency,
		}
	default:
		rowType := "Dépôt"
		if stmt.Direction == models.Debit {
			rowType = "Retrait"
		}
		return []string{date, rowType, csvField(stmt.Memo), "", "", "", "", "", "", "", value, currency}
	}
}

// tickerFromPayee returns the security symbol: the token following the
// category phrase, which the payee split already isolated.
func tickerFromPayee(stmt models.Statement) string {
	rest := strings.TrimPrefix(stmt.Payee, string(stmt.Category))
	return strings.TrimSpace(rest)
}

func matchGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// amountField extracts a labeled numeric sub-field and renders it with a
// decimal comma.
func amountField(re *regexp.Regexp, s string) string {
	m := matchGroup(re, s)
	if m == "" {
		return ""
	}
	m = strings.ReplaceAll(m, "'", "")
	m = strings.ReplaceAll(m, ",", "")
	return decimalComma(m)
}

func decimalComma(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}

// csvField keeps a free-text value from breaking the delimiter layout.
func csvField(s string) string {
	return strings.ReplaceAll(s, ";", ",")
}
