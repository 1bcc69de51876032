package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a diary import file.
type ImportSchema struct {
	Header *HeaderImport `json:"header,omitempty" yaml:"header,omitempty"`
	Days   []DayImport   `json:"days" yaml:"days"`
}

// HeaderImport sets the report header fields of the importing user.
type HeaderImport struct {
	DisplayName *string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	HeaderID    *string `json:"header_id,omitempty" yaml:"header_id,omitempty"`
}

// DayImport is one night in the import file.
type DayImport struct {
	Date       string          `json:"date" yaml:"date"`
	Sleepiness *int            `json:"sleepiness,omitempty" yaml:"sleepiness,omitempty"`
	Memo       string          `json:"memo,omitempty" yaml:"memo,omitempty"`
	Segments   []SegmentImport `json:"segments,omitempty" yaml:"segments,omitempty"`
	Events     []EventImport   `json:"events,omitempty" yaml:"events,omitempty"`
}

// SegmentImport is a span of the night. Kind accepts canonical tags
// ("deep") as well as legacy labels ("Deep Sleep (ぐっすり)").
type SegmentImport struct {
	Kind  string `json:"kind" yaml:"kind"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// EventImport is a punctual event such as medication or a toilet visit.
type EventImport struct {
	Kind string `json:"kind" yaml:"kind"`
	At   string `json:"at" yaml:"at"`
}

// Format names an import file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension; anything that
// is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadImportSchema reads and parses a diary import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatFromPath(path))
}

// ParseImportSchema decodes an import document.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &schema)
	default:
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
