package spec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Format is a document serialization format.
type Format string

const (
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a user-supplied format name ("json", "yaml", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("spec: unsupported format %q (want json or yaml)", s)
	}
}

// FormatFromPath infers the format from a file extension.
// Anything other than ".json" is YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Marshal serializes the document. Map keys are emitted in sorted order by
// both encoders, so equal documents always produce equal bytes.
func (d *Document) Marshal(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return d.ToJSON()
	case FormatYAML, "":
		return d.ToYAML()
	default:
		return nil, fmt.Errorf("spec: unsupported format %q", f)
	}
}

// ToJSON serializes the document as indented JSON with a trailing newline.
func (d *Document) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("spec: marshal json: %w", err)
	}
	return append(data, '\n'), nil
}

// ToYAML serializes the document as YAML.
func (d *Document) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("spec: marshal yaml: %w", err)
	}
	return data, nil
}
