package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// Load reads a PDF file and returns its text layout as a Document.
// Text fragments are grouped into rows by Y coordinate and ordered left to
// right within a row, so the run sequence follows the statement's reading
// order — the parser's token offsets depend on this ordering.
func Load(filePath string) (*Document, error) {
	doc, err := loadWithLibrary(filePath)
	if err != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %w. The PDF may be image-based or use custom font encodings", err)
	}
	if !isReadableDocument(doc) {
		return nil, fmt.Errorf("no readable text could be extracted from PDF %q; the file may be scanned or encrypted", filePath)
	}
	return doc, nil
}

// loadWithLibrary extracts the layout via ledongthuc/pdf. The library can
// panic on malformed input, so failures are converted to errors.
func loadWithLibrary(filePath string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	doc = &Document{}
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, buildPage(page))
	}
	logrus.Debugf("extracted %d page(s) from %s", len(doc.Pages), filePath)
	return doc, nil
}

// buildPage groups a page's text fragments by Y coordinate (rows), sorts the
// rows top to bottom and the fragments in each row left to right.
func buildPage(page pdf.Page) Page {
	content := page.Content()

	type fragment struct {
		x float64
		s string
	}
	rowMap := make(map[int][]fragment)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		// Round Y to the nearest integer to group fragments into rows
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], fragment{x: t.X, s: t.S})
	}

	// PDF Y grows bottom-to-top, so descending Y is reading order
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var p Page
	for _, y := range yKeys {
		frags := rowMap[y]
		sort.Slice(frags, func(a, b int) bool {
			return frags[a].x < frags[b].x
		})

		text := Text{}
		var prevX float64
		for j, frag := range frags {
			if j > 0 && frag.x-prevX > 15 {
				// Large horizontal gap means a column boundary: new text item
				p.Texts = append(p.Texts, text)
				text = Text{}
			}
			text.Runs = append(text.Runs, NewRun(frag.s))
			prevX = frag.x
		}
		if len(text.Runs) > 0 {
			p.Texts = append(p.Texts, text)
		}
	}
	return p
}

// isReadableDocument checks that the extracted runs hold enough readable
// text to be worth parsing. Custom-font PDFs frequently decode to garbage;
// parsing must not run on that.
func isReadableDocument(doc *Document) bool {
	total := 0
	readable := 0
	for _, page := range doc.Pages {
		for _, text := range page.Texts {
			for _, run := range text.Runs {
				for _, r := range run.Decode() {
					total++
					switch {
					case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
						strings.ContainsRune(".,-/:;()'", r)):
						readable++
					case unicode.Is(unicode.Latin, r):
						// Accented characters are normal in French statements
						readable++
					}
				}
			}
		}
	}
	if total <= 50 {
		return false
	}
	return float64(readable)/float64(total) > 0.6
}
