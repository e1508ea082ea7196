package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/extractor"
)

// statementsMarker opens every currency section: the run immediately after
// it holds the section's currency code.
const statementsMarker = "Extrait de compte en"

// flattenPage decodes a page's runs into one ordered token sequence. All
// token offsets in the header parser and the scanner are relative to this
// flattened order.
func flattenPage(page extractor.Page) []string {
	var tokens []string
	for _, text := range page.Texts {
		for _, run := range text.Runs {
			tokens = append(tokens, run.Decode())
		}
	}
	return tokens
}

// sectionStart returns the currency code of the statement section starting
// on this page, or "" when the page is a continuation.
func sectionStart(page extractor.Page) string {
	for i, text := range page.Texts {
		for _, run := range text.Runs {
			if run.Decode() == statementsMarker {
				if i+1 < len(page.Texts) && len(page.Texts[i+1].Runs) > 0 {
					return page.Texts[i+1].Runs[0].Decode()
				}
				return ""
			}
		}
	}
	return ""
}

// pagesForCurrency keeps the first contiguous run of pages belonging to the
// requested currency: the page carrying its section marker plus the
// continuation pages that follow, stopping as soon as another currency's
// section starts. A later second section for the same currency is not
// merged; reconciliation only holds within one marker-driven block.
func pagesForCurrency(pages []extractor.Page, currency string) []extractor.Page {
	var result []extractor.Page
	collecting := false
	for i, page := range pages {
		start := sectionStart(page)
		if !collecting {
			if start == currency {
				collecting = true
				result = append(result, page)
			}
			continue
		}
		if start == "" || start == currency {
			result = append(result, page)
			continue
		}
		logrus.Debugf("page %d starts section for %s, closing %s block", i+1, start, currency)
		break
	}
	return result
}

// DetectCurrencies lists the currency codes whose section markers appear in
// the document, in page order.
func DetectCurrencies(doc *extractor.Document) []string {
	var currencies []string
	seen := make(map[string]bool)
	for _, page := range doc.Pages {
		if start := sectionStart(page); start != "" && !seen[start] {
			seen[start] = true
			currencies = append(currencies, start)
		}
	}
	return currencies
}
