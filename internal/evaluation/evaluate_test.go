package evaluation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"namphong/internal/metrics"
)

func writeGold(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "gold.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing gold file: %v", err)
	}
	return path
}

func writeOCR(t *testing.T, dir, key, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, key+".txt"), []byte(text), 0644); err != nil {
		t.Fatalf("writing OCR file: %v", err)
	}
}

func TestLoadGold(t *testing.T) {
	dir := t.TempDir()
	path := writeGold(t, dir, `{"filenames":["p1.jpg","p2.jpg"],"content":{"p1":["a"],"p2":["b"]}}`)

	gold, err := LoadGold(path)
	if err != nil {
		t.Fatalf("LoadGold: %v", err)
	}
	if len(gold.Filenames) != 2 {
		t.Errorf("len(Filenames) = %d, want 2", len(gold.Filenames))
	}
	if got := gold.Content["p2"][0]; got != "b" {
		t.Errorf("Content[p2][0] = %q, want %q", got, "b")
	}
}

func TestLoadGoldMissingFile(t *testing.T) {
	if _, err := LoadGold(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("LoadGold on missing file returned nil error")
	}
}

func TestLoadGoldMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeGold(t, dir, `{"filenames": [`)
	if _, err := LoadGold(path); err == nil {
		t.Fatal("LoadGold on malformed JSON returned nil error")
	}
}

func TestEvaluateSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeOCR(t, dir, "p1", "hello wrold")

	gold := &GoldStandard{
		Filenames: []string{"p1.jpg"},
		Content:   map[string][]string{"p1": {"hello world"}},
	}

	report, err := Evaluate(gold, dir)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(report.WER-0.5) > 1e-9 {
		t.Errorf("WER = %v, want 0.5", report.WER)
	}
	// "world" -> "wrold" is two character substitutions out of the
	// 11-character reference (space included).
	if math.Abs(report.CER-2.0/11.0) > 1e-9 {
		t.Errorf("CER = %v, want %v", report.CER, 2.0/11.0)
	}
	if report.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", report.PageCount)
	}
}

func TestEvaluatePerfectMatchAcrossPages(t *testing.T) {
	dir := t.TempDir()
	writeOCR(t, dir, "page_1", "Văn minh\nhọc thuật")
	writeOCR(t, dir, "page_2", "nước PHÁP")

	gold := &GoldStandard{
		Filenames: []string{"page_1.png", "page_2.png"},
		Content: map[string][]string{
			"page_1": {"văn minh", "học thuật"},
			"page_2": {"nước pháp"},
		},
	}

	report, err := Evaluate(gold, dir)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.WER != 0 || report.CER != 0 {
		t.Errorf("got WER %v, CER %v, want 0, 0", report.WER, report.CER)
	}
}

func TestEvaluateMissingGoldContent(t *testing.T) {
	dir := t.TempDir()
	writeOCR(t, dir, "page3", "text")

	gold := &GoldStandard{
		Filenames: []string{"page3.png"},
		Content:   map[string][]string{},
	}

	_, err := Evaluate(gold, dir)
	if !errors.Is(err, ErrMissingGoldContent) {
		t.Errorf("error = %v, want ErrMissingGoldContent", err)
	}
}

func TestEvaluateMissingOCRFile(t *testing.T) {
	dir := t.TempDir()

	gold := &GoldStandard{
		Filenames: []string{"page1.png"},
		Content:   map[string][]string{"page1": {"some reference"}},
	}

	_, err := Evaluate(gold, dir)
	if !errors.Is(err, ErrMissingOCRFile) {
		t.Errorf("error = %v, want ErrMissingOCRFile", err)
	}
}

func TestEvaluateEmptyReference(t *testing.T) {
	dir := t.TempDir()
	writeOCR(t, dir, "p1", "text")

	gold := &GoldStandard{
		Filenames: []string{"p1.jpg"},
		Content:   map[string][]string{"p1": {"  "}},
	}

	_, err := Evaluate(gold, dir)
	if !errors.Is(err, metrics.ErrEmptyInput) {
		t.Errorf("error = %v, want metrics.ErrEmptyInput", err)
	}
}

func TestEvaluateWeightsByVolumeNotPageCount(t *testing.T) {
	// One perfect four-word page plus one fully wrong one-word page.
	// A per-page average would report 0.5; the whole-corpus score is
	// one word error out of five reference words.
	dir := t.TempDir()
	writeOCR(t, dir, "long", "one two three four")
	writeOCR(t, dir, "short", "wrong")

	gold := &GoldStandard{
		Filenames: []string{"long.jpg", "short.jpg"},
		Content: map[string][]string{
			"long":  {"one two three four"},
			"short": {"five"},
		},
	}

	report, err := Evaluate(gold, dir)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(report.WER-0.2) > 1e-9 {
		t.Errorf("WER = %v, want 0.2", report.WER)
	}
}
