package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"namphong/internal/config"
	"namphong/internal/lexicon"
	"namphong/internal/logger"
	"namphong/internal/sheets"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon [html-file]",
	Short: "Extract trilingual lexicon records from a scraped HTML page",
	Long: `Parse the two-column glossary tables of a Wikisource HTML page and
extract one record per well-formed entry: the Vietnamese headword, its
Han characters, the Vietnamese gloss and the French gloss.

Rows that do not match the expected two-cell "term / — han ＝ vi — fr"
shape are skipped. Records are written as CSV to the output file, and
optionally appended to a Google Sheets worksheet for review.`,
	Example: `  # Extract records to CSV
  namphong lexicon data/raw/tu-vung.html -o data/lexicon.csv

  # Also append them to the review spreadsheet
  namphong lexicon data/raw/tu-vung.html -o data/lexicon.csv \
    --sheet-url "https://docs.google.com/spreadsheets/d/SHEET_ID/edit"`,
	Args: cobra.ExactArgs(1),
	RunE: runLexicon,
}

func init() {
	rootCmd.AddCommand(lexiconCmd)

	lexiconCmd.Flags().StringP("output", "o", "", "Output CSV file (required)")
	lexiconCmd.Flags().String("sheet-url", "", "Google Sheets URL to append records to (optional)")
	lexiconCmd.Flags().String("worksheet", "", "Worksheet name for the Sheets export")
	lexiconCmd.MarkFlagRequired("output")
}

func runLexicon(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("lexicon")

	outputPath, _ := cmd.Flags().GetString("output")
	sheetURL, _ := cmd.Flags().GetString("sheet-url")
	worksheet, _ := cmd.Flags().GetString("worksheet")

	htmlPath := args[0]
	f, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	rows, err := lexicon.ParseTables(f)
	if err != nil {
		return fmt.Errorf("failed to parse HTML tables: %w", err)
	}

	records := lexicon.Extract(rows)
	log.Info().
		Str("input", htmlPath).
		Int("rows", len(rows)).
		Int("records", len(records)).
		Msg("Extracted lexicon records")

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := lexicon.WriteCSV(out, records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	fmt.Printf("Extracted %d lexicon records to %s\n", len(records), outputPath)

	if sheetURL == "" {
		return nil
	}

	if worksheet == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		worksheet = cfg.GoogleSheetWorksheet
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svc, err := sheets.NewService(ctx, sheetURL)
	if err != nil {
		return fmt.Errorf("failed to create sheets service: %w", err)
	}
	if err := svc.WriteRecords(ctx, records, worksheet); err != nil {
		return fmt.Errorf("failed to export records to Google Sheets: %w", err)
	}
	fmt.Printf("Appended %d records to worksheet %q\n", len(records), worksheet)
	return nil
}
