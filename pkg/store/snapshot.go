package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/roadmap/pkg/model"
)

var ErrInvalidSnapshot = errors.New("store: invalid snapshot")

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("store: unknown format %q", s)
}

// FormatForPath picks the encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// EncodeSnapshot renders doc in the given format.
func EncodeSnapshot(doc model.Document, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("store: encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("store: encode snapshot: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// DecodeSnapshot parses a snapshot. The document must carry both a projects
// and an events key; everything else is optional.
func DecodeSnapshot(data []byte, f Format) (model.Document, error) {
	var doc model.Document
	var keys map[string]interface{}
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return doc, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	default:
		if err := json.Unmarshal(data, &keys); err != nil {
			return doc, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	for _, required := range []string{"projects", "events"} {
		if _, ok := keys[required]; !ok {
			return doc, fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, required)
		}
	}

	var err error
	if f == FormatYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if doc.TimelineRange != nil {
		if err := doc.TimelineRange.Validate(); err != nil {
			return doc, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	return doc, nil
}
