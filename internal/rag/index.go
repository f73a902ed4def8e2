package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sashabaranov/go-openai"

	"namphong/internal/logger"
)

// ErrEmptyIndex is returned when a search runs against an index with no
// chunks.
var ErrEmptyIndex = errors.New("vector index contains no documents")

// Embedder turns texts into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEmbedder implements Embedder with the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder using the small multilingual
// embedding model, which handles the mixed Vietnamese/French/Han corpus.
func NewOpenAIEmbedder(client *openai.Client) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: client, model: openai.SmallEmbedding3}
}

// Embed requests embeddings for a batch of texts.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings response has %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// Index is an in-memory vector index over chunks.
type Index struct {
	embedder Embedder
	chunks   []Chunk
	vectors  [][]float32
}

// SearchResult is a matching chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// BuildIndex embeds all chunks and builds the index.
func BuildIndex(ctx context.Context, embedder Embedder, chunks []Chunk) (*Index, error) {
	log := logger.WithComponent("rag")

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("building index: %w", err)
		}
	}

	log.Info().Int("chunks", len(chunks)).Msg("Vector index built")
	return &Index{embedder: embedder, chunks: chunks, vectors: vectors}, nil
}

// Search embeds the query and returns the k most similar chunks by cosine
// similarity, best first.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if len(ix.chunks) == 0 {
		return nil, ErrEmptyIndex
	}

	queryVectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVector := queryVectors[0]

	results := make([]SearchResult, len(ix.chunks))
	for i := range ix.chunks {
		results[i] = SearchResult{
			Chunk: ix.chunks[i],
			Score: cosineSimilarity(queryVector, ix.vectors[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
