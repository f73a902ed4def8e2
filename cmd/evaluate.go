package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"namphong/internal/evaluation"
	"namphong/internal/logger"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score OCR output against a gold-standard transcription",
	Long: `Compare machine OCR output against a manually corrected gold standard
and report word error rate (WER) and character error rate (CER).

The gold standard is a JSON file with a "filenames" list fixing the
page order and a "content" object mapping each page key to its
transcribed lines. The OCR folder must contain one <page-key>.txt file
per gold page. All pages are concatenated into a single reference and
hypothesis before scoring, so long pages weigh more than short ones.`,
	Example: `  # Score a volume against its gold standard
  namphong evaluate --gold data/gold/So-1.json --ocr-dir data/So-1/ocr`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("gold", "", "Path to the gold-standard JSON file (required)")
	evaluateCmd.Flags().String("ocr-dir", "", "Folder containing the OCR .txt files (required)")
	evaluateCmd.MarkFlagRequired("gold")
	evaluateCmd.MarkFlagRequired("ocr-dir")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("evaluate")

	goldPath, _ := cmd.Flags().GetString("gold")
	ocrDir, _ := cmd.Flags().GetString("ocr-dir")

	gold, err := evaluation.LoadGold(goldPath)
	if err != nil {
		return fmt.Errorf("failed to load gold standard: %w", err)
	}

	log.Info().
		Str("gold", goldPath).
		Str("ocr_dir", ocrDir).
		Int("pages", len(gold.Filenames)).
		Msg("Evaluating OCR quality")

	report, err := evaluation.Evaluate(gold, ocrDir)
	if err != nil {
		return err
	}

	log.Info().
		Float64("wer", report.WER).
		Float64("cer", report.CER).
		Int("pages", report.PageCount).
		Msg("Evaluation completed")

	fmt.Printf("Pages evaluated: %d\n", report.PageCount)
	fmt.Printf("Word error rate (WER):      %.4f\n", report.WER)
	fmt.Printf("Character error rate (CER): %.4f\n", report.CER)
	return nil
}
