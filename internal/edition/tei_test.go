package edition

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTEIDocument(t *testing.T) {
	meta := testMetadata()
	meta.Publisher = "Đông-Kinh ấn-quán"
	meta.PublicationPlace = "Hà Nội"
	meta.SourceDescription = "Wikisource transcription"

	doc := &Document{
		Metadata: meta,
		TextBody: []string{"Đoạn thứ nhất.", "Đoạn thứ hai."},
	}

	tei := NewTEIDocument(doc)

	titles := tei.Header.FileDesc.TitleStmt.Titles
	if len(titles) != 2 {
		t.Fatalf("len(titles) = %d, want 2", len(titles))
	}
	if titles[0].Type != "main" || titles[0].Lang != "vi" || titles[0].Text != "Nam Phong tạp chí" {
		t.Errorf("main title = %+v", titles[0])
	}
	if titles[1].Type != "alt" || titles[1].Lang != "fr" || titles[1].Text != "Vent du Sud" {
		t.Errorf("alt title = %+v", titles[1])
	}

	pub := tei.Header.FileDesc.PublicationStmt
	if pub.Publisher != "Đông-Kinh ấn-quán" || pub.PubPlace != "Hà Nội" || pub.Date != "1917-07-01" {
		t.Errorf("publicationStmt = %+v", pub)
	}
	if tei.Header.FileDesc.SourceDesc.P != "Wikisource transcription" {
		t.Errorf("sourceDesc = %q", tei.Header.FileDesc.SourceDesc.P)
	}
	if len(tei.Text.Body.Paragraphs) != 2 {
		t.Errorf("len(paragraphs) = %d, want 2", len(tei.Text.Body.Paragraphs))
	}
}

func TestWriteTEI(t *testing.T) {
	doc := &Document{
		Metadata: testMetadata(),
		TextBody: []string{"Văn minh học thuật."},
	}

	path := filepath.Join(t.TempDir(), "output", "doc.xml")
	if err := WriteTEI(path, NewTEIDocument(doc)); err != nil {
		t.Fatalf("WriteTEI: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<TEI xmlns="http://www.tei-c.org/ns/1.0">`,
		`<title type="main" xml:lang="vi">Nam Phong tạp chí</title>`,
		`<title type="alt" xml:lang="fr">Vent du Sud</title>`,
		`<date>1917-07-01</date>`,
		`<p>Văn minh học thuật.</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("TEI output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestHTMLToTEIEndToEnd(t *testing.T) {
	const page = `<html><body><p>Đoạn <b>thứ</b> nhất.</p><p>Đoạn thứ hai.</p></body></html>`

	doc, err := HTMLToDocument(strings.NewReader(page), testMetadata())
	if err != nil {
		t.Fatalf("HTMLToDocument: %v", err)
	}

	tei := NewTEIDocument(doc)
	paragraphs := tei.Text.Body.Paragraphs
	if len(paragraphs) != 2 {
		t.Fatalf("len(paragraphs) = %d, want 2", len(paragraphs))
	}
	if paragraphs[0] != "Đoạn thứ nhất." {
		t.Errorf("paragraphs[0] = %q", paragraphs[0])
	}
}
