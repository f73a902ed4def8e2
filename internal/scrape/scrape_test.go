package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>trang</html>"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "pages", "tu-vung.html")
	if err := Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "<html>trang</html>" {
		t.Errorf("downloaded content = %q", data)
	}
}

func TestDownloadSkipsExistingFile(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("fresh"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cached.html")
	if err := os.WriteFile(dest, []byte("cached"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if hits != 0 {
		t.Errorf("server hit %d times, want 0", hits)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "cached" {
		t.Errorf("cached file overwritten: %q", data)
	}
}

func TestDownloadNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "missing.html")
	if err := Download(context.Background(), server.URL, dest); err == nil {
		t.Fatal("Download of 404 page returned nil error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination file written despite error")
	}
}

func TestExtractText(t *testing.T) {
	const page = `<html><body>
<div class="header">chrome</div>
<div class="mw-parser-output">
  <p>Văn minh  </p>
  <p><i>học</i> thuật</p>
</div>
</body></html>`

	text, err := ExtractText(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	want := "Văn minh\nhọc\nthuật"
	if text != want {
		t.Errorf("ExtractText = %q, want %q", text, want)
	}
	if strings.Contains(text, "chrome") {
		t.Error("text includes content outside the main division")
	}
}

func TestExtractTextMissingMainContent(t *testing.T) {
	_, err := ExtractText(strings.NewReader("<html><body><p>no main div</p></body></html>"))
	if !errors.Is(err, ErrMainContentNotFound) {
		t.Errorf("error = %v, want ErrMainContentNotFound", err)
	}
}
