package rag

import (
	"strings"

	"namphong/internal/edition"
)

// Chunk is one indexable unit: a text passage with the bibliographic
// metadata of the document it came from.
type Chunk struct {
	// Content is the indexed text, metadata header included.
	Content string

	// Metadata is the source document's bibliographic record.
	Metadata edition.Metadata
}

// BuildChunks prefixes every passage of a document with a human-readable
// metadata header, so title, authors and date are embedded alongside the
// passage and retrievable as part of the indexed content.
func BuildChunks(doc *edition.Document) []Chunk {
	header := metadataHeader(&doc.Metadata)

	passages := Chunks(doc)
	chunks := make([]Chunk, 0, len(passages))
	for _, passage := range passages {
		chunks = append(chunks, Chunk{
			Content:  header + passage,
			Metadata: doc.Metadata,
		})
	}
	return chunks
}

// metadataHeader renders the bibliographic fields as labeled lines, each
// line omitted when the field is absent.
func metadataHeader(meta *edition.Metadata) string {
	lines := []string{"Title: " + meta.TitleMain}
	if len(meta.Authors) > 0 {
		lines = append(lines, "Authors: "+strings.Join(meta.Authors, ", "))
	}
	if !meta.PublicationDate.IsZero() {
		lines = append(lines, "Publication Date: "+meta.PublicationDate.String())
	}
	if meta.Publisher != "" {
		lines = append(lines, "Publisher: "+meta.Publisher)
	}
	if len(meta.Genres) > 0 {
		lines = append(lines, "Genres: "+strings.Join(meta.Genres, ", "))
	}
	return strings.Join(lines, "\n") + "\n\n"
}
