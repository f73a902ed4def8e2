package edition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document is a structured text document: metadata plus the transcript
// paragraphs in reading order.
type Document struct {
	Metadata Metadata `json:"metadata"`
	TextBody []string `json:"text_body"`
}

// ImageDocument is the image-based variant, keyed by page so the provenance
// of each OCR'd line is preserved. Lexicon pages are kept apart from the
// running text.
type ImageDocument struct {
	Metadata Metadata            `json:"metadata"`
	Lexicon  map[string][]string `json:"lexicon,omitempty"`
	TextBody map[string][]string `json:"text_body"`
}

// WriteJSON serializes v to path as indented UTF-8 JSON, creating parent
// directories as needed.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing JSON to %s: %w", path, err)
	}
	return nil
}
