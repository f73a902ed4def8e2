// Package rag indexes the structured JSON documents of the digital edition
// and answers questions over them with retrieval-augmented generation.
package rag

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"namphong/internal/edition"
	"namphong/internal/logger"
)

// LoadDocuments reads every *.json document in dir. A file that fails to
// parse is logged and skipped; a missing directory aborts the run. The
// number of successfully loaded documents is reported even when some files
// failed.
func LoadDocuments(dir string) ([]edition.Document, error) {
	log := logger.WithComponent("rag")

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing JSON files in %s: %w", dir, err)
	}

	var docs []edition.Document
	var skipped int
	for _, path := range paths {
		doc, err := loadDocument(path)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", filepath.Base(path)).
				Msg("Failed to load document, skipping")
			skipped++
			continue
		}
		docs = append(docs, *doc)
	}

	log.Info().
		Str("dir", dir).
		Int("loaded", len(docs)).
		Int("skipped", skipped).
		Msg("Loaded document corpus")
	return docs, nil
}

func loadDocument(path string) (*edition.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc edition.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

// Chunks returns the non-blank text body paragraphs of a document, trimmed.
func Chunks(doc *edition.Document) []string {
	var chunks []string
	for _, para := range doc.TextBody {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}
