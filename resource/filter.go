package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterKind selects the behavior of a filter backend.
type FilterKind int

const (
	// FilterFields filters by field values and lookups.
	FilterFields FilterKind = iota
	// FilterSearch is a free-text search.
	FilterSearch
	// FilterOrdering sorts the result.
	FilterOrdering
	// FilterQueryValidation rejects unknown query parameters and adds none.
	FilterQueryValidation
)

// UnmarshalYAML decodes a filter kind from its name.
func (k *FilterKind) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "fields", "field":
		*k = FilterFields
	case "search":
		*k = FilterSearch
	case "ordering", "sort":
		*k = FilterOrdering
	case "validation", "queryvalidation":
		*k = FilterQueryValidation
	default:
		return fmt.Errorf("resource: unknown filter kind %q", node.Value)
	}
	return nil
}

// ExactLookup is the default field lookup.
const ExactLookup = "exact"

// FilterField is one filterable field with its allowed lookups.
type FilterField struct {
	Name    string   `yaml:"name"`
	Kind    Kind     `yaml:"kind"`
	Lookups []string `yaml:"lookups"`
}

// FilterBackend describes one filter backend of a list view.
type FilterBackend struct {
	Kind   FilterKind
	Fields []FilterField
	// Param overrides the query parameter of search and ordering backends.
	Param string
}
