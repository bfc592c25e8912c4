package jsonapi

import (
	"fmt"

	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// FilterInspector names filter parameters the JSON:API way:
// "filter[<field>]", "filter[<field>.<lookup>]", "filter[search]" and
// "sort".
//
// See: https://jsonapi.org/format/#fetching-filtering
type FilterInspector struct{}

// FilterParameters describes the backend for JSON:API views.
func (FilterInspector) FilterParameters(c *openapi.Context, b resource.FilterBackend) openapi.Result[[]*openapi.Parameter] {
	if !IsResponse(c.View) {
		return openapi.Deferred[[]*openapi.Parameter]()
	}
	return openapi.Produced(openapi.FilterBackendParameters(b, func(field, lookup string) string {
		if lookup == "" {
			return "filter[" + field + "]"
		}
		return "filter[" + field + "." + lookup + "]"
	}, "filter[search]", "sort"))
}

// PaginationInspector wraps JSON:API list documents with pagination links
// and meta.
//
// See: https://jsonapi.org/format/#fetching-pagination
type PaginationInspector struct{}

// PaginatedResponse adds links and meta.pagination to a {data, included}
// document whose data member is an array.
func (PaginationInspector) PaginatedResponse(_ *openapi.Context, p *resource.Paginator, schema *openapi.Schema) openapi.Result[*openapi.Schema] {
	if p == nil || !p.JSONAPI {
		return openapi.Deferred[*openapi.Schema]()
	}
	if schema == nil || schema.Properties == nil {
		return openapi.Failed[*openapi.Schema](fmt.Errorf("%w: expected data field in response", ErrPagination))
	}
	data, ok := schema.Properties.Get("data")
	if !ok {
		return openapi.Failed[*openapi.Schema](fmt.Errorf("%w: expected data field in response", ErrPagination))
	}
	if !data.Type.Is("array") {
		return openapi.Failed[*openapi.Schema](fmt.Errorf("%w: array expected for paged response", ErrPagination))
	}

	integer := func() *openapi.Schema { return &openapi.Schema{Type: openapi.TypeString("integer")} }
	pagination := openapi.NewProperties().Set("count", integer())
	if p.Style == resource.LimitOffset {
		pagination.Set("limit", integer()).Set("offset", integer())
	} else {
		pagination.Set("page", integer()).Set("pages", integer())
	}

	uri := func() *openapi.Schema { return &openapi.Schema{Type: openapi.TypeString("string"), Format: "uri"} }
	links := openapi.NewProperties().
		Set("first", uri()).
		Set("next", uri()).
		Set("last", uri()).
		Set("prev", uri())

	props := openapi.NewProperties().
		Set("links", openapi.ObjectSchema(links)).
		Set("meta", openapi.ObjectSchema(openapi.NewProperties().
			Set("pagination", openapi.ObjectSchema(pagination)))).
		Set("data", data)
	if included, ok := schema.Properties.Get("included"); ok {
		props.Set("included", included)
	}

	out := openapi.ObjectSchema(props, schema.Required...)
	return openapi.Produced(out)
}

// PaginationParameters defers to the host inspector; the parameter names
// come from the paginator.
func (PaginationInspector) PaginationParameters(*openapi.Context, *resource.Paginator) openapi.Result[[]*openapi.Parameter] {
	return openapi.Deferred[[]*openapi.Parameter]()
}
