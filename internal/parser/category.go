package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/models"
)

// knownCategories maps the literal statement phrases (case- and
// accent-sensitive) to their category. Unknown phrases pass through as-is.
var knownCategories = map[string]models.Category{
	string(models.CategoryBuy):               models.CategoryBuy,
	string(models.CategoryDividend):          models.CategoryDividend,
	string(models.CategoryCard):              models.CategoryCard,
	string(models.CategoryTransferFrom):      models.CategoryTransferFrom,
	string(models.CategoryTransferTo):        models.CategoryTransferTo,
	string(models.CategoryInterests):         models.CategoryInterests,
	string(models.CategoryExchange):          models.CategoryExchange,
	string(models.CategoryAutoExchange):      models.CategoryAutoExchange,
	string(models.CategorySavingsDeposit):    models.CategorySavingsDeposit,
	string(models.CategorySavingsWithdrawal): models.CategorySavingsWithdrawal,
	string(models.CategoryCapitalGain):       models.CategoryCapitalGain,
	string(models.CategoryCardRefund):        models.CategoryCardRefund,
}

// splitInformation classifies a transaction's free-text span and derives the
// payee (short display label) and memo (fuller description) from it. The
// first token selects the category, and the category decides how the rest of
// the span splits.
func splitInformation(span []string) (models.Category, string, string) {
	if len(span) == 0 {
		return models.CategoryUnknown, "", ""
	}

	first := span[0]
	category, known := knownCategories[first]
	if !known {
		// Unrecognized phrases are still processed with the default split,
		// keeping the raw phrase as the category.
		logrus.Warnf("statement category %q not recognized", first)
		category = models.Category(first)
	}

	var payee, memo string
	switch category {
	case models.CategoryCard:
		payee = tokenAt(span, 2)
		memo = first + " " + strings.Join(span[1:], " ")
	case models.CategoryTransferFrom, models.CategoryTransferTo:
		payee = strings.Join(span[:min(2, len(span))], " ")
		memo = strings.Join(span[1:], " ")
	case models.CategoryInterests:
		payee = tokenAt(span, 1)
		memo = ""
	default:
		// Buy, dividend, exchanges, savings moves, capital gain, card refund
		// and unrecognized phrases all share one split.
		payee = first
		if second := tokenAt(span, 1); second != "" {
			payee += " " + second
		}
		memo = first
		if len(span) > 1 {
			memo += " " + strings.Join(span[1:], " ")
		}
	}

	memo = squeezeSpaces(memo)
	return category, payee, memo
}

func tokenAt(span []string, i int) string {
	if i < len(span) {
		return span[i]
	}
	return ""
}

// squeezeSpaces collapses the double and triple spaces left behind by
// joining layout-split runs.
func squeezeSpaces(s string) string {
	s = strings.ReplaceAll(s, "   ", " ")
	return strings.ReplaceAll(s, "  ", " ")
}
