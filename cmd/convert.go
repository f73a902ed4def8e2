package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"namphong/internal/edition"
	"namphong/internal/logger"
	"namphong/internal/ocr"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert scraped HTML or OCR'd page images into structured documents",
	Long: `Convert source material into the structured edition formats: a
bibliographic metadata record plus the document body, as JSON or TEI-XML.

"convert html" pairs the paragraphs of scraped HTML transcripts with a
per-issue metadata YAML file; "convert tei" renders the same material as
TEI-XML instead. "convert images" OCRs every images/ folder under a data
root and matches each issue against a metadata list by volume and issue
number.`,
}

var convertHTMLCmd = &cobra.Command{
	Use:   "html [folder]",
	Short: "Convert the HTML transcripts of one issue to JSON",
	Long: `Convert every .html file in the folder into a JSON document, taking
one entry per <p> element. All documents of the issue share the
metadata record from the --metadata YAML file.`,
	Example: `  # Convert the transcripts of issue 1
  namphong convert html data/Quyen-1/So-1 --metadata data/Quyen-1/So-1/metadata.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertHTML,
}

var convertTEICmd = &cobra.Command{
	Use:   "tei [folder]",
	Short: "Convert the HTML transcripts of one issue to TEI-XML",
	Long: `Convert every .html file in the folder into a TEI P5 XML document,
with a teiHeader built from the --metadata YAML file and one <p>
element per HTML paragraph in the body.`,
	Example: `  # Render the transcripts of issue 1 as TEI
  namphong convert tei data/Quyen-1/So-1 --metadata data/Quyen-1/So-1/metadata.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertTEI,
}

var convertImagesCmd = &cobra.Command{
	Use:   "images [data-folder]",
	Short: "OCR page-image folders and convert each issue to JSON",
	Long: `Walk the data folder for directories named "images", OCR their page
scans, and write one JSON document per issue. The issue's volume and
number are read from the folder path (e.g. Quyen-1/So-3/images) and
matched against the --metadata JSON list; a folder with no matching
record is logged and skipped.

Requires Google Cloud Vision credentials (GOOGLE_APPLICATION_CREDENTIALS
or GOOGLE_CREDENTIALS).`,
	Example: `  # Convert every issue of volume 1
  namphong convert images data/Quyen-1 --metadata data/metadata.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertImages,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertHTMLCmd)
	convertCmd.AddCommand(convertTEICmd)
	convertCmd.AddCommand(convertImagesCmd)

	convertHTMLCmd.Flags().String("metadata", "", "Metadata YAML file for the issue (required)")
	convertHTMLCmd.Flags().StringP("output", "o", "", "Output folder (default <folder>/output_json)")
	convertHTMLCmd.MarkFlagRequired("metadata")

	convertTEICmd.Flags().String("metadata", "", "Metadata YAML file for the issue (required)")
	convertTEICmd.Flags().StringP("output", "o", "", "Output folder (default <folder>/output)")
	convertTEICmd.MarkFlagRequired("metadata")

	convertImagesCmd.Flags().String("metadata", "", "Metadata list JSON file (required)")
	convertImagesCmd.Flags().String("languages", "vi,fr", "Comma-separated OCR language hints")
	convertImagesCmd.Flags().Int("timeout", 1800, "Processing timeout in seconds")
	convertImagesCmd.MarkFlagRequired("metadata")
}

func runConvertHTML(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("convert")

	metadataPath, _ := cmd.Flags().GetString("metadata")
	outputDir, _ := cmd.Flags().GetString("output")

	folder := args[0]
	if outputDir == "" {
		outputDir = filepath.Join(folder, "output_json")
	}

	meta, err := edition.ParseYAMLMetadata(metadataPath)
	if err != nil {
		return err
	}

	htmlFiles, err := filepath.Glob(filepath.Join(folder, "*.html"))
	if err != nil {
		return fmt.Errorf("scanning %s for HTML files: %w", folder, err)
	}
	if len(htmlFiles) == 0 {
		log.Warn().Str("folder", folder).Msg("No HTML files found")
		return nil
	}

	converted := 0
	for _, htmlFile := range htmlFiles {
		stem := strings.TrimSuffix(filepath.Base(htmlFile), filepath.Ext(htmlFile))
		outputFile := filepath.Join(outputDir, stem+".json")

		if err := convertOneHTML(htmlFile, *meta, outputFile); err != nil {
			return fmt.Errorf("converting %s: %w", htmlFile, err)
		}
		log.Info().
			Str("input", filepath.Base(htmlFile)).
			Str("output", filepath.Base(outputFile)).
			Msg("Converted HTML document")
		converted++
	}

	fmt.Printf("Converted %d HTML documents to %s\n", converted, outputDir)
	return nil
}

func convertOneHTML(htmlPath string, meta edition.Metadata, outputPath string) error {
	f, err := os.Open(htmlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := edition.HTMLToDocument(f, meta)
	if err != nil {
		return err
	}
	return edition.WriteJSON(outputPath, doc)
}

func runConvertTEI(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("convert")

	metadataPath, _ := cmd.Flags().GetString("metadata")
	outputDir, _ := cmd.Flags().GetString("output")

	folder := args[0]
	if outputDir == "" {
		outputDir = filepath.Join(folder, "output")
	}

	meta, err := edition.ParseYAMLMetadata(metadataPath)
	if err != nil {
		return err
	}

	htmlFiles, err := filepath.Glob(filepath.Join(folder, "*.html"))
	if err != nil {
		return fmt.Errorf("scanning %s for HTML files: %w", folder, err)
	}
	if len(htmlFiles) == 0 {
		log.Warn().Str("folder", folder).Msg("No HTML files found")
		return nil
	}

	converted := 0
	for _, htmlFile := range htmlFiles {
		stem := strings.TrimSuffix(filepath.Base(htmlFile), filepath.Ext(htmlFile))
		outputFile := filepath.Join(outputDir, stem+".xml")

		if err := convertOneTEI(htmlFile, *meta, outputFile); err != nil {
			return fmt.Errorf("converting %s: %w", htmlFile, err)
		}
		log.Info().
			Str("input", filepath.Base(htmlFile)).
			Str("output", filepath.Base(outputFile)).
			Msg("Converted TEI document")
		converted++
	}

	fmt.Printf("Converted %d TEI documents to %s\n", converted, outputDir)
	return nil
}

func convertOneTEI(htmlPath string, meta edition.Metadata, outputPath string) error {
	f, err := os.Open(htmlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := edition.HTMLToDocument(f, meta)
	if err != nil {
		return err
	}
	return edition.WriteTEI(outputPath, edition.NewTEIDocument(doc))
}

func runConvertImages(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("convert")

	metadataPath, _ := cmd.Flags().GetString("metadata")
	languages, _ := cmd.Flags().GetString("languages")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	dataFolder := args[0]

	metadataList, err := edition.LoadMetadataList(metadataPath)
	if err != nil {
		return err
	}

	folders, err := edition.FindImageFolders(dataFolder)
	if err != nil {
		return err
	}
	log.Info().
		Int("folders", len(folders)).
		Str("root", dataFolder).
		Msg("Found image folders")

	ctx, cancel := contextWithTimeout(timeoutSecs, log)
	defer cancel()

	svc, err := newOCRService(ctx, "vision", ocr.ParseLanguageHints(languages))
	if err != nil {
		return err
	}

	converted := 0
	for _, folder := range folders {
		issueDir := filepath.Dir(folder)
		volume := trailingNumber(filepath.Base(filepath.Dir(issueDir)))
		issue := trailingNumber(filepath.Base(issueDir))

		log.Info().
			Str("folder", folder).
			Str("volume", volume).
			Str("issue", issue).
			Msg("Processing image folder")

		meta := edition.MatchMetadata(metadataList, volume, issue)
		if meta == nil {
			log.Warn().
				Str("folder", folder).
				Msg("No metadata found for folder, skipping")
			continue
		}

		outputFile := filepath.Join(issueDir, "output_json",
			fmt.Sprintf("Nam-Phong-Q%s-S%s.json", volume, issue))
		if err := edition.BuildImageDocument(ctx, svc, folder, *meta, outputFile); err != nil {
			return fmt.Errorf("converting %s: %w", folder, err)
		}
		converted++
	}

	fmt.Printf("Converted %d issues to JSON\n", converted)
	return nil
}

// trailingNumber returns the part of a folder name after the last dash, so
// "Quyen-1" and "So-3" yield "1" and "3".
func trailingNumber(name string) string {
	parts := strings.Split(name, "-")
	return parts[len(parts)-1]
}
