// Package textnorm canonicalizes raw page text before comparison.
//
// OCR output and gold transcriptions of the same page differ in incidental
// ways: Unicode composition of Vietnamese diacritics, line breaks inherited
// from the page layout, runs of spaces, letter case. Normalize removes that
// noise and nothing else, so that the error-rate metrics only count real
// recognition differences. Punctuation and diacritics are kept as-is.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var spaceCollapser = strings.NewReplacer("\n", " ", "\r", " ")

// Normalize returns the canonical form of text:
// NFC composition, newlines replaced by spaces, whitespace runs collapsed
// to a single space, leading/trailing whitespace trimmed, and lowercased.
// The transformation is idempotent.
func Normalize(text string) string {
	// NFC so combining-diacritic sequences and precomposed characters
	// become byte-identical. Vietnamese comparisons are wrong without it.
	text = norm.NFC.String(text)
	text = spaceCollapser.Replace(text)
	text = strings.Join(strings.Fields(text), " ")
	return strings.ToLower(text)
}
