// Package evaluation scores OCR output for an issue against its gold
// standard transcription.
//
// The reference and hypothesis are concatenated across all pages before
// scoring, in the page order the gold standard lists. Scoring the whole
// corpus at once weights the metric by total word and character volume
// instead of by page count, so very short pages do not distort the result.
// No per-page breakdown is produced.
package evaluation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"namphong/internal/logger"
	"namphong/internal/metrics"
	"namphong/internal/textnorm"
)

// Report holds the metrics of one evaluation run. It is logged by the
// caller and not persisted.
type Report struct {
	WER float64
	CER float64

	// PageCount is the number of pages that went into the run.
	PageCount int
}

// Evaluate compares the OCR text files in ocrDir against gold and returns
// the corpus-level word and character error rates.
//
// For each listed filename the page key is the filename stem; the gold
// content entry and the OCR file <key>.txt must both exist, otherwise the
// run fails with ErrMissingGoldContent or ErrMissingOCRFile.
func Evaluate(gold *GoldStandard, ocrDir string) (*Report, error) {
	const op = "Evaluate"
	log := logger.WithComponent("evaluation")

	var refParts, hypParts []string

	for _, filename := range gold.Filenames {
		key := pageKey(filename)

		lines, ok := gold.Content[key]
		if !ok {
			return nil, wrapEvalError(op, ErrMissingGoldContent, key)
		}
		refParts = append(refParts, strings.Join(lines, " "))

		ocrPath := filepath.Join(ocrDir, key+".txt")
		ocrText, err := os.ReadFile(ocrPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, wrapEvalError(op, ErrMissingOCRFile, ocrPath)
			}
			return nil, wrapEvalError(op, err, fmt.Sprintf("reading %s", ocrPath))
		}
		hypParts = append(hypParts, string(ocrText))

		log.Debug().Str("page", key).Msg("Loaded gold and OCR text")
	}

	reference := textnorm.Normalize(strings.Join(refParts, " "))
	hypothesis := textnorm.Normalize(strings.Join(hypParts, " "))

	scores, err := metrics.Score(reference, hypothesis)
	if err != nil {
		return nil, wrapEvalError(op, err, "scoring concatenated corpus")
	}

	return &Report{
		WER:       scores.WER,
		CER:       scores.CER,
		PageCount: len(gold.Filenames),
	}, nil
}

// pageKey returns the filename stem used to correlate a gold entry, a page
// image, and an OCR output file.
func pageKey(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}
