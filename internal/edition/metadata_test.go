package edition

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `title_main: Nam Phong tạp chí
title_alt: Vent du Sud
publisher: Đông-Kinh ấn-quán
publication_place: Hà Nội
publication_date: 1917-07-01
authors:
  - Phạm Quỳnh
genres:
  - periodical
issn: "1859-0748"
identifiers:
  wikisource: Nam_Phong_tạp_chí
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseYAMLMetadata(t *testing.T) {
	path := writeFile(t, t.TempDir(), "metadata.yaml", validYAML)

	meta, err := ParseYAMLMetadata(path)
	if err != nil {
		t.Fatalf("ParseYAMLMetadata: %v", err)
	}
	if meta.TitleMain != "Nam Phong tạp chí" {
		t.Errorf("TitleMain = %q", meta.TitleMain)
	}
	if meta.PublicationDate.String() != "1917-07-01" {
		t.Errorf("PublicationDate = %q, want 1917-07-01", meta.PublicationDate)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Phạm Quỳnh" {
		t.Errorf("Authors = %v", meta.Authors)
	}
	if meta.Identifiers["wikisource"] == "" {
		t.Error("Identifiers[wikisource] missing")
	}
}

func TestParseYAMLMetadataMissingRequiredField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "metadata.yaml", "title_main: only a main title\npublication_date: 1917-07-01\n")

	_, err := ParseYAMLMetadata(path)
	if !errors.Is(err, ErrInvalidMetadata) {
		t.Errorf("error = %v, want ErrInvalidMetadata", err)
	}
}

func TestParseYAMLMetadataMissingFile(t *testing.T) {
	if _, err := ParseYAMLMetadata(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("ParseYAMLMetadata on missing file returned nil error")
	}
}

func TestParseYAMLMetadataMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "metadata.yaml", "title_main: [unclosed")
	if _, err := ParseYAMLMetadata(path); err == nil {
		t.Fatal("ParseYAMLMetadata on malformed YAML returned nil error")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("1917-07-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"1917-07-01"` {
		t.Errorf("marshaled date = %s, want %q", data, "1917-07-01")
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip changed date: %v != %v", back, d)
	}
}

func TestLoadMetadataListAndMatch(t *testing.T) {
	list := `[
  {"metadata": {"title_main": "Nam Phong", "title_alt": "Vent du Sud", "publication_date": "1917-07-01", "volume": "1", "numero": "1", "authors": [], "genres": []}},
  {"metadata": {"title_main": "Nam Phong", "title_alt": "Vent du Sud", "publication_date": "1917-08-01", "volume": "1", "numero": "2", "authors": [], "genres": []}}
]`
	path := writeFile(t, t.TempDir(), "metadata.json", list)

	entries, err := LoadMetadataList(path)
	if err != nil {
		t.Fatalf("LoadMetadataList: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	match := MatchMetadata(entries, "1", "2")
	if match == nil {
		t.Fatal("MatchMetadata returned nil for existing issue")
	}
	if match.PublicationDate.String() != "1917-08-01" {
		t.Errorf("matched issue date = %q, want 1917-08-01", match.PublicationDate)
	}

	if MatchMetadata(entries, "2", "1") != nil {
		t.Error("MatchMetadata returned a record for an unknown issue")
	}
}
