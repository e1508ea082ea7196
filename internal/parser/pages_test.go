package parser

import (
	"reflect"
	"testing"

	"github.com/yuhtools/yuh2ofx/internal/extractor"
)

func sectionPage(currency string, extra ...string) extractor.Page {
	tokens := append([]string{statementsMarker, currency}, extra...)
	return pageOf(tokens...)
}

func continuationPage(extra ...string) extractor.Page {
	return pageOf(append([]string{"some", "continuation", "tokens"}, extra...)...)
}

func TestPagesForCurrency(t *testing.T) {
	tests := []struct {
		name     string
		pages    []extractor.Page
		currency string
		want     int
	}{
		{
			name:     "single section with continuation",
			pages:    []extractor.Page{sectionPage("CHF"), continuationPage()},
			currency: "CHF",
			want:     2,
		},
		{
			name:     "stops at next currency section",
			pages:    []extractor.Page{sectionPage("EUR"), continuationPage(), sectionPage("USD"), continuationPage()},
			currency: "EUR",
			want:     2,
		},
		{
			name: "non-contiguous sections are not merged",
			pages: []extractor.Page{
				sectionPage("EUR"), continuationPage(),
				sectionPage("USD"),
				sectionPage("EUR"), continuationPage(),
			},
			currency: "EUR",
			want:     2,
		},
		{
			name:     "pages before the section are excluded",
			pages:    []extractor.Page{continuationPage(), sectionPage("USD"), sectionPage("CHF")},
			currency: "CHF",
			want:     1,
		},
		{
			name:     "currency absent",
			pages:    []extractor.Page{sectionPage("EUR"), sectionPage("USD")},
			currency: "CHF",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagesForCurrency(tt.pages, tt.currency)
			if len(got) != tt.want {
				t.Errorf("got %d page(s), want %d", len(got), tt.want)
			}
		})
	}
}

func TestSectionStart(t *testing.T) {
	if got := sectionStart(sectionPage("EUR")); got != "EUR" {
		t.Errorf("got %q, want EUR", got)
	}
	if got := sectionStart(continuationPage()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDetectCurrencies(t *testing.T) {
	doc := &extractor.Document{Pages: []extractor.Page{
		sectionPage("CHF"), continuationPage(),
		sectionPage("EUR"),
		sectionPage("USD"),
		sectionPage("CHF"), // repeated section, listed once
	}}
	got := DetectCurrencies(doc)
	want := []string{"CHF", "EUR", "USD"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFlattenPageDecodesRuns(t *testing.T) {
	page := pageOf("Paiement carte de débit", "1'234.56")
	got := flattenPage(page)
	if len(got) != 2 || got[0] != "Paiement carte de débit" || got[1] != "1'234.56" {
		t.Errorf("unexpected tokens: %v", got)
	}
}
