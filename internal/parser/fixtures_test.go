package parser

import "github.com/yuhtools/yuh2ofx/internal/extractor"

// pageOf builds a page with one text item per token, mirroring how the
// statement's table cells arrive from the extraction.
func pageOf(tokens ...string) extractor.Page {
	var page extractor.Page
	for _, tok := range tokens {
		page.Texts = append(page.Texts, extractor.Text{Runs: []extractor.Run{extractor.NewRun(tok)}})
	}
	return page
}
