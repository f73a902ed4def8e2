package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"namphong/internal/logger"
)

// ProcessFolder recognizes every image with the given extension in inputDir
// and writes one <stem>.txt file per image to outputDir.
//
// Recognition is best-effort: a page that fails is logged and skipped so a
// single bad scan does not abort a whole issue. The returned counts report
// how many pages succeeded and failed.
func ProcessFolder(ctx context.Context, svc Service, inputDir, outputDir, extension string) (processed, failed int, err error) {
	log := logger.WithComponent("ocr")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, 0, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	pattern := filepath.Join(inputDir, "*."+strings.TrimPrefix(extension, "."))
	images, err := filepath.Glob(pattern)
	if err != nil {
		return 0, 0, fmt.Errorf("listing images in %s: %w", inputDir, err)
	}
	sort.Strings(images)

	if len(images) == 0 {
		log.Warn().
			Str("folder", inputDir).
			Str("extension", extension).
			Msg("No images found")
		return 0, 0, nil
	}

	for _, imagePath := range images {
		if ctx.Err() != nil {
			return processed, failed, ctx.Err()
		}

		outputPath := filepath.Join(outputDir, stem(imagePath)+".txt")
		if err := recognizeToFile(ctx, svc, imagePath, outputPath); err != nil {
			log.Error().
				Err(err).
				Str("image", imagePath).
				Msg("OCR failed for page, skipping")
			failed++
			continue
		}

		log.Info().
			Str("image", imagePath).
			Str("output", outputPath).
			Msg("OCR output saved")
		processed++
	}

	return processed, failed, nil
}

func recognizeToFile(ctx context.Context, svc Service, imagePath, outputPath string) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", imagePath, err)
	}
	defer f.Close()

	text, err := svc.RecognizeImage(ctx, f)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
