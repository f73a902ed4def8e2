// Package metrics computes OCR quality metrics over normalized text.
package metrics

import (
	"errors"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ErrEmptyInput is returned when either text is empty after trimming.
// An empty comparison is meaningless and must not silently produce 0 or NaN.
var ErrEmptyInput = errors.New("reference and hypothesis must be non-empty after normalization")

// Scores holds the word and character error rates of one evaluation run.
type Scores struct {
	// WER is the word-level edit distance divided by the reference word count.
	WER float64 `json:"wer"`

	// CER is the character-level edit distance divided by the reference
	// character (rune) count.
	CER float64 `json:"cer"`
}

// Score compares a hypothesis against a reference and returns WER and CER.
// Both strings are expected to be normalized already; the denominators are
// taken from the reference, so Score(a, b) and Score(b, a) generally differ.
func Score(reference, hypothesis string) (*Scores, error) {
	if strings.TrimSpace(reference) == "" || strings.TrimSpace(hypothesis) == "" {
		return nil, ErrEmptyInput
	}

	return &Scores{
		WER: wordErrorRate(reference, hypothesis),
		CER: charErrorRate(reference, hypothesis),
	}, nil
}

// wordErrorRate runs the Levenshtein recurrence over word tokens by mapping
// each distinct word to a synthetic rune, so one rune edit equals one word
// edit (insert/delete/substitute, unit cost each).
func wordErrorRate(reference, hypothesis string) float64 {
	refWords := strings.Fields(reference)
	hypWords := strings.Fields(hypothesis)

	ids := make(map[string]rune)
	encode := func(words []string) []rune {
		encoded := make([]rune, len(words))
		for i, w := range words {
			id, ok := ids[w]
			if !ok {
				id = rune(len(ids))
				ids[w] = id
			}
			encoded[i] = id
		}
		return encoded
	}

	distance := levenshtein.DistanceForStrings(encode(refWords), encode(hypWords), levenshtein.DefaultOptions)
	return float64(distance) / float64(len(refWords))
}

func charErrorRate(reference, hypothesis string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(reference), []rune(hypothesis), levenshtein.DefaultOptions)
	return float64(distance) / float64(len([]rune(reference)))
}
