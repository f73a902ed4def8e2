package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"namphong/internal/config"
	"namphong/internal/logger"
	"namphong/internal/rag"
)

// testQueries exercises retrieval and answering in all three languages of
// the periodical.
var testQueries = []string{
	"Văn minh học thuật của nước Pháp được miêu tả như thế nào trong Nam Phong tạp chí?",
	"Quel est le rôle de l'Académie française selon les articles de la revue Nam Phong ?",
	"How does Nam Phong magazine discuss the conflict between material and spiritual progress in modern civilization?",
}

var ragCmd = &cobra.Command{
	Use:   "rag",
	Short: "Ask questions over the converted JSON documents",
	Long: `Build an in-memory vector index over the converted JSON documents and
answer questions grounded on the retrieved passages.

Every paragraph becomes one indexed chunk, prefixed with the document's
bibliographic header so titles, authors and dates are searchable too.
Questions may be asked in Vietnamese, French or English; answers come
back in the language of the question.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key for embeddings and chat completions`,
	Example: `  # Interactive session over one issue
  namphong rag --data-dir data/Quyen-1/So-1/output_json

  # Run the built-in trilingual test queries
  namphong rag --data-dir data/Quyen-1/So-1/output_json --test`,
	RunE: runRAG,
}

func init() {
	rootCmd.AddCommand(ragCmd)

	ragCmd.Flags().String("data-dir", "", "Folder of converted JSON documents (required)")
	ragCmd.Flags().Bool("test", false, "Run the built-in trilingual test queries instead of an interactive session")
	ragCmd.MarkFlagRequired("data-dir")
}

func runRAG(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("rag")

	dataDir, _ := cmd.Flags().GetString("data-dir")
	testMode, _ := cmd.Flags().GetBool("test")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.RequireOpenAI(); err != nil {
		return err
	}

	ctx := context.Background()

	docs, err := rag.LoadDocuments(dataDir)
	if err != nil {
		return err
	}

	var chunks []rag.Chunk
	for i := range docs {
		chunks = append(chunks, rag.BuildChunks(&docs[i])...)
	}
	log.Info().
		Int("documents", len(docs)).
		Int("chunks", len(chunks)).
		Msg("Building vector index")

	client := openai.NewClient(cfg.OpenAIAPIKey)
	index, err := rag.BuildIndex(ctx, rag.NewOpenAIEmbedder(client), chunks)
	if err != nil {
		return fmt.Errorf("failed to build vector index: %w", err)
	}

	answerer := rag.NewAnswerer(client, index)

	if testMode {
		for _, query := range testQueries {
			if err := askAndPrint(ctx, answerer, query); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Println("Ask a question (q or exit to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "q" || query == "exit" {
			break
		}
		if err := askAndPrint(ctx, answerer, query); err != nil {
			log.Error().Err(err).Msg("Failed to answer question")
		}
	}
	return scanner.Err()
}

func askAndPrint(ctx context.Context, answerer *rag.Answerer, query string) error {
	fmt.Printf("\nQuery: %s\n", query)

	answer, err := answerer.Ask(ctx, query)
	if err != nil {
		return err
	}

	fmt.Printf("Answer: %s\n", answer.Text)
	fmt.Println("Sources:")
	for i, source := range answer.Sources {
		fmt.Printf("  [%d] (%.3f) %s\n", i+1, source.Score, sourceLabel(source))
	}
	return nil
}

// sourceLabel summarizes a retrieved chunk as its title plus the start of
// the passage.
func sourceLabel(source rag.SearchResult) string {
	excerpt := source.Chunk.Content
	if idx := strings.Index(excerpt, "\n\n"); idx >= 0 {
		excerpt = excerpt[idx+2:]
	}
	excerpt = strings.Join(strings.Fields(excerpt), " ")
	if runes := []rune(excerpt); len(runes) > 80 {
		excerpt = string(runes[:80]) + "..."
	}
	return fmt.Sprintf("%s: %s", source.Chunk.Metadata.TitleMain, excerpt)
}
