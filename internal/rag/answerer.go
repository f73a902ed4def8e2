package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"namphong/internal/logger"
)

// retrievalK is the number of chunks retrieved per question.
const retrievalK = 5

// Answer is the generated reply together with the source chunks it was
// grounded on.
type Answer struct {
	Text    string
	Sources []SearchResult
}

// Answerer answers questions over an index using a chat completion model.
type Answerer struct {
	client *openai.Client
	index  *Index
	model  string
	log    zerolog.Logger
}

// NewAnswerer creates an answerer over the given index.
func NewAnswerer(client *openai.Client, index *Index) *Answerer {
	return &Answerer{
		client: client,
		index:  index,
		model:  openai.GPT4oMini,
		log:    logger.WithComponent("rag"),
	}
}

// Ask retrieves the most relevant passages for the query and generates an
// answer grounded on them. The query may be in Vietnamese, French or
// English; the model is instructed to answer in the language of the
// question.
func (a *Answerer) Ask(ctx context.Context, query string) (*Answer, error) {
	const op = "Ask"

	a.log.Info().Str("query", query).Msg("Processing query")

	sources, err := a.index.Search(ctx, query, retrievalK)
	if err != nil {
		return nil, fmt.Errorf("%s: retrieval failed: %w", op, err)
	}

	var contextBuilder strings.Builder
	for i, source := range sources {
		fmt.Fprintf(&contextBuilder, "[%d] %s\n\n", i+1, source.Chunk.Content)
	}

	prompt := fmt.Sprintf(`Answer the question using only the numbered passages below, which come from a digitized historical Vietnamese periodical. Answer in the language of the question. If the passages do not contain the answer, say so.

PASSAGES:
%s
QUESTION: %s`, contextBuilder.String(), query)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: chat completion failed: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: no response choices", op)
	}

	answer := &Answer{
		Text:    strings.TrimSpace(resp.Choices[0].Message.Content),
		Sources: sources,
	}

	a.log.Info().
		Int("sources", len(sources)).
		Int("answer_length", len(answer.Text)).
		Msg("Generated answer")
	return answer, nil
}
