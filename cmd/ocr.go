package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"namphong/internal/logger"
	"namphong/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [images-folder]",
	Short: "OCR a folder of scanned page images",
	Long: `Recognize the text of every page image in a folder and write one .txt
file per image next to the output folder.

Recognition is best-effort per page: a page that fails is logged and
skipped, and the command reports how many pages succeeded.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string

The Document AI backend additionally requires GOOGLE_CLOUD_PROJECT and
DOCUMENT_AI_PROCESSOR_ID.`,
	Example: `  # OCR all JPEGs of an issue with Cloud Vision
  namphong ocr data/So-1/images -o data/So-1/ocr

  # Degraded scans through a Document AI OCR processor
  namphong ocr data/So-1/images -o data/So-1/ocr --engine documentai

  # Different language hints and image extension
  namphong ocr scans -o out --languages vi,fr,zh --extension png`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringP("output", "o", "", "Output folder for the .txt files (required)")
	ocrCmd.Flags().String("engine", "vision", "OCR backend: vision or documentai")
	ocrCmd.Flags().String("languages", "vi,fr", "Comma-separated language hints")
	ocrCmd.Flags().String("extension", "jpg", "Image file extension to process")
	ocrCmd.Flags().Int("timeout", 600, "Processing timeout in seconds")
	ocrCmd.MarkFlagRequired("output")
}

func runOCR(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ocr")

	outputDir, _ := cmd.Flags().GetString("output")
	engine, _ := cmd.Flags().GetString("engine")
	languages, _ := cmd.Flags().GetString("languages")
	extension, _ := cmd.Flags().GetString("extension")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputDir := args[0]
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("images folder not found: %s", inputDir)
	}

	log.Info().
		Str("input", inputDir).
		Str("output", outputDir).
		Str("engine", engine).
		Str("languages", languages).
		Msg("Starting OCR processing")

	ctx, cancel := contextWithTimeout(timeoutSecs, log)
	defer cancel()

	svc, err := newOCRService(ctx, engine, ocr.ParseLanguageHints(languages))
	if err != nil {
		return err
	}

	processed, failed, err := ocr.ProcessFolder(ctx, svc, inputDir, outputDir, extension)
	if err != nil {
		return err
	}

	log.Info().
		Int("processed", processed).
		Int("failed", failed).
		Msg("OCR processing completed")
	fmt.Printf("OCR completed: %d pages processed, %d failed\n", processed, failed)
	return nil
}

// newOCRService creates the configured OCR backend.
func newOCRService(ctx context.Context, engine string, languageHints []string) (ocr.Service, error) {
	switch engine {
	case "vision":
		svc, err := ocr.NewGoogleVisionService(ctx, languageHints)
		if err != nil {
			return nil, fmt.Errorf("failed to create Vision OCR service: %w", err)
		}
		return svc, nil
	case "documentai":
		svc, err := ocr.NewDocumentAIService(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Document AI OCR service: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (expected vision or documentai)", engine)
	}
}

// contextWithTimeout creates a context with timeout and signal handling.
func contextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
