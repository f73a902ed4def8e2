package edition

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const teiNS = "http://www.tei-c.org/ns/1.0"

// TEIDocument is the TEI P5 rendering of a Document: a teiHeader built from
// the bibliographic metadata and a body with one <p> per transcript
// paragraph.
type TEIDocument struct {
	XMLName xml.Name  `xml:"TEI"`
	Xmlns   string    `xml:"xmlns,attr"`
	Header  teiHeader `xml:"teiHeader"`
	Text    teiText   `xml:"text"`
}

type teiHeader struct {
	FileDesc teiFileDesc `xml:"fileDesc"`
}

type teiFileDesc struct {
	TitleStmt       teiTitleStmt       `xml:"titleStmt"`
	PublicationStmt teiPublicationStmt `xml:"publicationStmt"`
	SourceDesc      teiSourceDesc      `xml:"sourceDesc"`
}

type teiTitleStmt struct {
	Titles []teiTitle `xml:"title"`
}

type teiTitle struct {
	Type string `xml:"type,attr"`
	Lang string `xml:"xml:lang,attr"`
	Text string `xml:",chardata"`
}

type teiPublicationStmt struct {
	Publisher string `xml:"publisher"`
	PubPlace  string `xml:"pubPlace"`
	Date      string `xml:"date"`
}

type teiSourceDesc struct {
	P string `xml:"p"`
}

type teiText struct {
	Body teiBody `xml:"body"`
}

type teiBody struct {
	Paragraphs []string `xml:"p"`
}

// NewTEIDocument builds the TEI rendering of a document. The main title is
// the Vietnamese masthead, the alternate title the French one.
func NewTEIDocument(doc *Document) *TEIDocument {
	meta := doc.Metadata
	return &TEIDocument{
		Xmlns: teiNS,
		Header: teiHeader{
			FileDesc: teiFileDesc{
				TitleStmt: teiTitleStmt{
					Titles: []teiTitle{
						{Type: "main", Lang: "vi", Text: meta.TitleMain},
						{Type: "alt", Lang: "fr", Text: meta.TitleAlt},
					},
				},
				PublicationStmt: teiPublicationStmt{
					Publisher: meta.Publisher,
					PubPlace:  meta.PublicationPlace,
					Date:      meta.PublicationDate.String(),
				},
				SourceDesc: teiSourceDesc{P: meta.SourceDescription},
			},
		},
		Text: teiText{Body: teiBody{Paragraphs: doc.TextBody}},
	}
}

// WriteTEI serializes the TEI document to path as indented UTF-8 XML with an
// XML declaration, creating parent directories as needed.
func WriteTEI(path string, doc *TEIDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling TEI document: %w", err)
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
