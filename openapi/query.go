package openapi

import (
	"errors"
	"fmt"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// ErrPagination is returned when a paginated response does not carry a
// list of results.
var ErrPagination = errors.New("openapi: invalid paginated response")

// PaginatorEnvelopeInspector describes the count/next/previous/results
// envelope of plain REST paginators.
type PaginatorEnvelopeInspector struct{}

// PaginatedResponse wraps an array schema into the envelope.
func (PaginatorEnvelopeInspector) PaginatedResponse(_ *Context, _ *resource.Paginator, schema *Schema) Result[*Schema] {
	if schema == nil || !schema.Type.Is("array") {
		return Failed[*Schema](fmt.Errorf("%w: array expected", ErrPagination))
	}
	uri := func() *Schema {
		return &Schema{Type: TypeArray("string", "null"), Format: "uri"}
	}
	props := NewProperties().
		Set("count", &Schema{Type: TypeString("integer")}).
		Set("next", uri()).
		Set("previous", uri()).
		Set("results", schema)
	return Produced(ObjectSchema(props, "count", "results"))
}

// PaginationParameters returns integer query parameters for the paginator.
func (PaginatorEnvelopeInspector) PaginationParameters(_ *Context, p *resource.Paginator) Result[[]*Parameter] {
	names := p.Params()
	descriptions := []string{
		"A page number within the paginated result set.",
		"Number of results to return per page.",
	}
	if p.Style == resource.LimitOffset {
		descriptions = []string{
			"Number of results to return per page.",
			"The initial index from which to return the results.",
		}
	}
	params := make([]*Parameter, 0, len(names))
	for i, name := range names {
		params = append(params, &Parameter{
			Name:        name,
			In:          "query",
			Description: descriptions[i],
			Schema:      &Schema{Type: TypeString("integer")},
		})
	}
	return Produced(params)
}

// QueryFilterInspector describes filter backends with plain query
// parameter names: "<field>" and "<field>__<lookup>", "search" and
// "ordering".
type QueryFilterInspector struct{}

// FilterParameters returns the parameters of the backend.
func (QueryFilterInspector) FilterParameters(_ *Context, b resource.FilterBackend) Result[[]*Parameter] {
	return Produced(FilterBackendParameters(b, func(field, lookup string) string {
		if lookup == "" {
			return field
		}
		return field + "__" + lookup
	}, "search", "ordering"))
}

// FilterBackendParameters builds the parameters of a filter backend using
// the given naming of field filters and the default search and ordering
// parameter names. A backend Param overrides the default name.
func FilterBackendParameters(b resource.FilterBackend, fieldParam func(field, lookup string) string, search, ordering string) []*Parameter {
	switch b.Kind {
	case resource.FilterSearch:
		if b.Param != "" {
			search = b.Param
		}
		return []*Parameter{{
			Name:        search,
			In:          "query",
			Description: "A search term.",
			Schema:      &Schema{Type: TypeString("string")},
		}}

	case resource.FilterOrdering:
		if b.Param != "" {
			ordering = b.Param
		}
		return []*Parameter{{
			Name:        ordering,
			In:          "query",
			Description: "Which field to use when ordering the results.",
			Schema:      &Schema{Type: TypeString("string")},
		}}

	case resource.FilterQueryValidation:
		return nil
	}

	var params []*Parameter
	for _, f := range b.Fields {
		lookups := f.Lookups
		if len(lookups) == 0 {
			lookups = []string{resource.ExactLookup}
		}
		for _, lookup := range lookups {
			if lookup == resource.ExactLookup {
				lookup = ""
			}
			schema := KindSchema(f.Kind)
			if lookup == "in" {
				schema = &Schema{Type: TypeString("string"), Description: "Multiple values may be separated by commas."}
			}
			params = append(params, &Parameter{
				Name:   fieldParam(f.Name, lookup),
				In:     "query",
				Schema: schema,
			})
		}
	}
	return params
}
