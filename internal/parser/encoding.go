package parser

import "strings"

// encodingRepairs fixes the accented characters the upstream text extraction
// mis-decodes. The table is closed: these are the only artifacts observed in
// Yuh statements, not a general transliteration.
var encodingRepairs = strings.NewReplacer(
	"‡", "à",
	"È", "é",
	"Í", "ê",
	"Ù", "ô",
	"…", "É",
)

// repairEncoding applies the substitution table to one free-text fragment.
func repairEncoding(s string) string {
	return encodingRepairs.Replace(s)
}
