package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a document serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("openapi: unknown format %q", s)
}

// MarshalJSON serializes the document as indented JSON.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-document
func MarshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// MarshalYAML serializes the document as YAML. The document is encoded to
// JSON first so JSON tags, extensions and property order are honored, then
// re-encoded as block-style YAML.
//
// See: https://spec.openapis.org/oas/v3.1.0#format
func MarshalYAML(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)

	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// clearStyle drops the flow and quoting styles inherited from JSON. The
// encoder re-quotes scalars whose plain form would change their type.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}

// Encode writes the document to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = MarshalYAML(doc)
	default:
		data, err = MarshalJSON(doc)
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("openapi: encode %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
