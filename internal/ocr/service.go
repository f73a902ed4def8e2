// Package ocr provides text recognition for scanned periodical pages using
// Google Cloud OCR services.
//
// Two backends are available: Cloud Vision document text detection and a
// Document AI OCR processor. Both take a single page image and return the
// recognized text in reading order, with language hints tuned for the
// Vietnamese/French source material.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID (Document AI backend)
package ocr

import (
	"context"
	"io"
	"strings"
	"time"
)

// DefaultLanguageHints are the scripts expected on a page of the periodical.
var DefaultLanguageHints = []string{"vi", "fr"}

// ParseLanguageHints splits a comma-separated hint list, trimming each code
// and dropping blanks, so "vi, fr" and "vi,fr" configure the same hints.
func ParseLanguageHints(s string) []string {
	var hints []string
	for _, hint := range strings.Split(s, ",") {
		if hint = strings.TrimSpace(hint); hint != "" {
			hints = append(hints, hint)
		}
	}
	return hints
}

// Service defines the interface for page-image text recognition.
type Service interface {
	// RecognizeImage extracts text from a single page image.
	RecognizeImage(ctx context.Context, image io.Reader) (string, error)

	// RecognizeImageWithMetadata extracts text with confidence and language
	// information attached.
	RecognizeImageWithMetadata(ctx context.Context, image io.Reader) (*Result, error)
}

// Result contains the recognized text of one page with metadata.
type Result struct {
	// Text is the recognized text in reading order.
	Text string `json:"text"`

	// Confidence is the average confidence score across all detected text
	// (0.0 to 1.0), when the backend reports one.
	Confidence float32 `json:"confidence"`

	// LanguageCodes contains the languages detected on the page.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is the timestamp when recognition completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long recognition took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}
