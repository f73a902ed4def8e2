package edition

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"namphong/internal/logger"
	"namphong/internal/ocr"
)

var pageNumberPattern = regexp.MustCompile(`page[_-]?(\d+)`)

// PageNumber extracts the numeric page index from a page image name, or 0
// when the name carries none.
func PageNumber(name string) int {
	match := pageNumberPattern.FindStringSubmatch(name)
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

// FindImageFolders returns every directory named "images" under root.
func FindImageFolders(root string) ([]string, error) {
	var folders []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "images" {
			folders = append(folders, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s for image folders: %w", root, err)
	}
	return folders, nil
}

// BuildImageDocument OCRs the page images of one issue and writes the
// structured JSON document to outputPath.
//
// Images are processed in numeric page order. Pages named lexicon_* go into
// the lexicon section, pages named page_* into the text body; a page that
// fails OCR is logged and skipped so the rest of the issue still converts.
func BuildImageDocument(ctx context.Context, svc ocr.Service, imagesDir string, meta Metadata, outputPath string) error {
	log := logger.WithComponent("edition")
	log.Info().Str("folder", imagesDir).Msg("Building JSON document from page images")

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return fmt.Errorf("reading image folder %s: %w", imagesDir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			images = append(images, entry.Name())
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return PageNumber(images[i]) < PageNumber(images[j])
	})

	var lexiconImages, textImages []string
	for _, name := range images {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		switch {
		case strings.HasPrefix(base, "lexicon"):
			lexiconImages = append(lexiconImages, name)
		case strings.Contains(base, "page_"):
			textImages = append(textImages, name)
		}
	}

	doc := &ImageDocument{
		Metadata: meta,
		Lexicon:  recognizePages(ctx, svc, imagesDir, lexiconImages, log),
		TextBody: recognizePages(ctx, svc, imagesDir, textImages, log),
	}
	if len(doc.Lexicon) == 0 {
		doc.Lexicon = nil
	}

	if err := WriteJSON(outputPath, doc); err != nil {
		return err
	}
	log.Info().Str("output", outputPath).Msg("JSON document saved")
	return nil
}

// recognizePages OCRs the given images and groups the non-blank text lines
// under page_N keys. Several scans may map to one logical page, so lines
// accumulate per key.
func recognizePages(ctx context.Context, svc ocr.Service, dir string, images []string, log zerolog.Logger) map[string][]string {
	pages := make(map[string][]string)
	for _, name := range images {
		pageID := fmt.Sprintf("page_%d", PageNumber(name))

		lines, err := recognizeLines(ctx, svc, filepath.Join(dir, name))
		if err != nil {
			log.Error().
				Err(err).
				Str("image", name).
				Msg("OCR failed for page image, skipping")
			continue
		}
		pages[pageID] = append(pages[pageID], lines...)
	}
	if len(pages) == 0 {
		return map[string][]string{}
	}
	return pages
}

func recognizeLines(ctx context.Context, svc ocr.Service, imagePath string) ([]string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", imagePath, err)
	}
	defer f.Close()

	text, err := svc.RecognizeImage(ctx, f)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
