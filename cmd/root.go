package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"namphong/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "namphong",
	Short: "Digitization and retrieval pipeline for the Nam Phong periodical",
	Long: `namphong digitizes the trilingual Nam Phong periodical and makes it
searchable: it downloads Wikisource transcripts, OCRs scanned page images,
converts both into structured JSON documents, measures OCR quality against
gold-standard transcriptions, extracts the trilingual lexicon tables, and
answers questions over the indexed corpus.`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
