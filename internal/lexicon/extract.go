// Package lexicon extracts trilingual dictionary entries from the
// two-column glossary tables of the Wikisource edition.
//
// Each table row pairs a Vietnamese term with a gloss cell of the shape
//
//	— <Han characters> ＝ <Vietnamese gloss> — <French gloss>
//
// Rows that do not fit this shape exactly are not errors: the source tables
// mix entry rows with headers, notes and typographical variants, and only
// well-formed entries are worth keeping. Non-matching rows are dropped
// without logging.
package lexicon

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const (
	emDash      = "—"
	fullWidthEq = "＝"
)

// Record is one lexicon entry: a term with its Han, Vietnamese and French
// glosses. Vi and Fr keep the delimiter prefixes used by the printed
// edition ("= ..." and "— ...").
type Record struct {
	Term string `json:"term"`
	Han  string `json:"han"`
	Vi   string `json:"vi"`
	Fr   string `json:"fr"`
}

// Row is one table row, as raw inner markup per cell in document order.
type Row struct {
	Cells []string
}

var tagPattern = regexp.MustCompile(`(?s)<.*?>`)

// stripTags removes markup spans with a non-greedy <...> match and resolves
// character entities, so rendered cell markup compares as text. It does not
// attempt to parse nested or malformed markup.
func stripTags(markup string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(markup, ""))
}

// Extract turns table rows into lexicon records, preserving row order.
// A row contributes at most one record; rows without exactly two cells and
// rows whose gloss does not parse are silently excluded.
func Extract(rows []Row) []Record {
	var records []Record
	for _, row := range rows {
		if len(row.Cells) != 2 {
			continue
		}

		term := strings.TrimSpace(stripTags(row.Cells[0]))
		han, vi, fr, ok := parseGloss(stripTags(row.Cells[1]))
		if !ok {
			continue
		}

		records = append(records, Record{
			Term: term,
			Han:  han,
			Vi:   "= " + vi,
			Fr:   "— " + fr,
		})
	}
	return records
}

// parseGloss splits a stripped gloss cell on its delimiters and validates
// the segment counts, so that a malformed gloss is an explicit non-match
// rather than a partial parse.
//
// Expected shape: leading em-dash, Han segment, full-width equals sign,
// Vietnamese segment, em-dash, French segment. A different separator glyph,
// a missing ＝, or extra dash-delimited segments all make the row a
// non-match.
func parseGloss(gloss string) (han, vi, fr string, ok bool) {
	dashParts := strings.Split(strings.TrimSpace(gloss), emDash)
	if len(dashParts) != 3 || strings.TrimSpace(dashParts[0]) != "" {
		return "", "", "", false
	}

	eqParts := strings.Split(dashParts[1], fullWidthEq)
	if len(eqParts) != 2 {
		return "", "", "", false
	}

	han = strings.TrimSpace(eqParts[0])
	vi = strings.TrimSpace(eqParts[1])
	fr = strings.TrimSpace(dashParts[2])
	if han == "" || vi == "" || fr == "" {
		return "", "", "", false
	}
	return han, vi, fr, true
}
