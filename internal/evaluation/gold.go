package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// GoldStandard is the manually verified reference transcription of an issue.
//
// Filenames lists the page image files in reading order; Content maps each
// page key (the filename stem) to that page's transcription lines. Every
// listed filename must have a content entry, and every listed page must have
// a matching OCR output file when evaluated.
type GoldStandard struct {
	Filenames []string            `json:"filenames"`
	Content   map[string][]string `json:"content"`
}

// LoadGold reads and parses a gold standard JSON file.
func LoadGold(path string) (*GoldStandard, error) {
	const op = "LoadGold"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapEvalError(op, err, fmt.Sprintf("reading %s", path))
	}

	var gold GoldStandard
	if err := json.Unmarshal(data, &gold); err != nil {
		return nil, wrapEvalError(op, err, fmt.Sprintf("parsing %s", path))
	}

	return &gold, nil
}
