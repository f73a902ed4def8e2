package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"namphong/internal/logger"
	"namphong/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Download a Wikisource page and extract its text",
	Long: `Download the HTML of a Wikisource page to a local file, then extract the
plain text of its main content division.

The downloaded HTML acts as a cache: when the destination file already
exists the download is skipped, so re-runs are offline and idempotent.`,
	Example: `  # Download the lexicon page of issue 1 and extract its text
  namphong scrape "https://vi.m.wikisource.org/wiki/..." \
    --html data/So-1/Tu-Vung.html --text data/So-1/Tu-Vung.txt

  # Download only, keep the raw HTML
  namphong scrape "https://vi.m.wikisource.org/wiki/..." --html page.html`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().String("html", "", "Destination path for the downloaded HTML (required)")
	scrapeCmd.Flags().String("text", "", "Destination path for the extracted text (optional)")
	scrapeCmd.MarkFlagRequired("html")
}

func runScrape(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scrape")

	htmlPath, _ := cmd.Flags().GetString("html")
	textPath, _ := cmd.Flags().GetString("text")
	url := args[0]

	log.Info().
		Str("url", url).
		Str("html", htmlPath).
		Msg("Starting scrape")

	if err := scrape.Download(cmd.Context(), url, htmlPath); err != nil {
		return err
	}

	if textPath == "" {
		return nil
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("opening downloaded HTML: %w", err)
	}
	defer f.Close()

	text, err := scrape.ExtractText(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", textPath, err)
	}

	log.Info().Str("text", textPath).Msg("Extracted text saved")
	return nil
}
