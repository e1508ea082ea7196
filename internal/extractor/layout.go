package extractor

import "net/url"

// Document is the layout structure handed to the parser: an ordered list of
// pages, each page an ordered list of text items, each item an ordered list
// of runs. Run fragments are URL-encoded, matching the upstream extraction
// contract; the parser decodes them when flattening a page.
type Document struct {
	Pages []Page
}

// Page is one PDF page's text items in reading order.
type Page struct {
	Texts []Text
}

// Text is one positioned text item (a table cell or label).
type Text struct {
	Runs []Run
}

// Run is a single URL-encoded text fragment.
type Run struct {
	T string
}

// NewRun wraps a plain fragment into its URL-encoded wire form.
func NewRun(s string) Run {
	return Run{T: url.QueryEscape(s)}
}

// Decode returns the run's plain text. Fragments that fail to decode are
// returned as-is; the parser treats them as noise.
func (r Run) Decode() string {
	s, err := url.QueryUnescape(r.T)
	if err != nil {
		return r.T
	}
	return s
}
