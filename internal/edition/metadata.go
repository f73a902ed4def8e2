// Package edition models the structured digital edition of the periodical:
// bibliographic metadata plus document bodies produced from HTML transcripts
// or OCR'd page images.
package edition

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMetadata is returned when a metadata record lacks a required field.
var ErrInvalidMetadata = errors.New("invalid metadata")

// Date is a calendar date serialized as an ISO date (2006-01-02) in both
// JSON and YAML.
type Date struct {
	time.Time
}

const isoDate = "2006-01-02"

// ParseDate parses an ISO date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(isoDate)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(isoDate))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(isoDate), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Metadata is the bibliographic record attached to every converted document.
// TitleMain, TitleAlt and PublicationDate are required; Volume and Numero are
// only set for image-based issues.
type Metadata struct {
	TitleMain         string            `json:"title_main" yaml:"title_main"`
	TitleAlt          string            `json:"title_alt" yaml:"title_alt"`
	Volume            string            `json:"volume,omitempty" yaml:"volume"`
	Numero            string            `json:"numero,omitempty" yaml:"numero"`
	Publisher         string            `json:"publisher,omitempty" yaml:"publisher"`
	PublicationPlace  string            `json:"publication_place,omitempty" yaml:"publication_place"`
	PublicationDate   Date              `json:"publication_date" yaml:"publication_date"`
	SourceDescription string            `json:"source_description,omitempty" yaml:"source_description"`
	Authors           []string          `json:"authors" yaml:"authors"`
	Genres            []string          `json:"genres" yaml:"genres"`
	ISSN              string            `json:"issn,omitempty" yaml:"issn"`
	Identifiers       map[string]string `json:"identifiers,omitempty" yaml:"identifiers"`
}

// Validate checks the required fields.
func (m *Metadata) Validate() error {
	if m.TitleMain == "" {
		return fmt.Errorf("%w: title_main is required", ErrInvalidMetadata)
	}
	if m.TitleAlt == "" {
		return fmt.Errorf("%w: title_alt is required", ErrInvalidMetadata)
	}
	if m.PublicationDate.IsZero() {
		return fmt.Errorf("%w: publication_date is required", ErrInvalidMetadata)
	}
	return nil
}

// ParseYAMLMetadata loads and validates a metadata YAML file. A missing or
// malformed file is fatal for the conversion that needs it.
func ParseYAMLMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file %s: %w", path, err)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("metadata file %s: %w", path, err)
	}
	return &meta, nil
}

// metadataEntry mirrors the shape of the issue-list JSON file, where each
// entry nests its record under a "metadata" key.
type metadataEntry struct {
	Metadata Metadata `json:"metadata"`
}

// LoadMetadataList loads the per-issue metadata records from a JSON file.
func LoadMetadataList(path string) ([]Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata list %s: %w", path, err)
	}

	var entries []metadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing metadata list %s: %w", path, err)
	}

	list := make([]Metadata, 0, len(entries))
	for i, entry := range entries {
		if err := entry.Metadata.Validate(); err != nil {
			return nil, fmt.Errorf("metadata list %s entry %d: %w", path, i, err)
		}
		list = append(list, entry.Metadata)
	}
	return list, nil
}

// MatchMetadata returns the record for the given volume and issue number,
// or nil when none matches.
func MatchMetadata(list []Metadata, volume, numero string) *Metadata {
	for i := range list {
		if list[i].Volume == volume && list[i].Numero == numero {
			return &list[i]
		}
	}
	return nil
}
