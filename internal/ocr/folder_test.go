package ocr

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// fakeService recognizes pages from a canned map and fails on demand.
type fakeService struct {
	texts map[string]string
	fail  map[string]bool
	calls []string
}

func (f *fakeService) RecognizeImage(ctx context.Context, image io.Reader) (string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}
	key := string(data)
	f.calls = append(f.calls, key)
	if f.fail[key] {
		return "", errors.New("recognition failed")
	}
	return f.texts[key], nil
}

func (f *fakeService) RecognizeImageWithMetadata(ctx context.Context, image io.Reader) (*Result, error) {
	text, err := f.RecognizeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

func TestProcessFolder(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	// File contents double as lookup keys into the fake service.
	for name, content := range map[string]string{
		"page_1.jpg": "k1",
		"page_2.jpg": "k2",
		"notes.txt":  "ignored",
	} {
		if err := os.WriteFile(filepath.Join(inputDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	svc := &fakeService{texts: map[string]string{"k1": "trang một", "k2": "trang hai"}}

	processed, failed, err := ProcessFolder(context.Background(), svc, inputDir, outputDir, "jpg")
	if err != nil {
		t.Fatalf("ProcessFolder: %v", err)
	}
	if processed != 2 || failed != 0 {
		t.Errorf("processed, failed = %d, %d, want 2, 0", processed, failed)
	}

	got, err := os.ReadFile(filepath.Join(outputDir, "page_1.txt"))
	if err != nil {
		t.Fatalf("reading OCR output: %v", err)
	}
	if string(got) != "trang một" {
		t.Errorf("page_1.txt = %q, want %q", got, "trang một")
	}
}

func TestProcessFolderSkipsFailedPages(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	for name, content := range map[string]string{
		"page_1.jpg": "good",
		"page_2.jpg": "bad",
	} {
		if err := os.WriteFile(filepath.Join(inputDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	svc := &fakeService{
		texts: map[string]string{"good": "text"},
		fail:  map[string]bool{"bad": true},
	}

	processed, failed, err := ProcessFolder(context.Background(), svc, inputDir, outputDir, "jpg")
	if err != nil {
		t.Fatalf("ProcessFolder: %v", err)
	}
	if processed != 1 || failed != 1 {
		t.Errorf("processed, failed = %d, %d, want 1, 1", processed, failed)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "page_2.txt")); !os.IsNotExist(err) {
		t.Error("output written for failed page")
	}
}

func TestProcessFolderEmptyFolder(t *testing.T) {
	processed, failed, err := ProcessFolder(context.Background(), &fakeService{}, t.TempDir(), t.TempDir(), "jpg")
	if err != nil {
		t.Fatalf("ProcessFolder: %v", err)
	}
	if processed != 0 || failed != 0 {
		t.Errorf("processed, failed = %d, %d, want 0, 0", processed, failed)
	}
}
