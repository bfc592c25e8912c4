package jsonapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// IncludedVariant is the component name suffix of included resource objects.
const IncludedVariant = "Included"

const includedDescription = "note: expect this field to be an array consisting of items of types listed below"

// ViewInspector describes JSON:API views: {data} request documents,
// {data, included} response documents and the include query parameter.
// Views that do not speak JSON:API are left to the next inspector.
type ViewInspector struct {
	Settings Settings
}

// QueryParameters adds the include parameter to the list parameters.
func (vi ViewInspector) QueryParameters(c *openapi.Context) openapi.Result[[]*openapi.Parameter] {
	if !IsResponse(c.View) {
		return openapi.Deferred[[]*openapi.Parameter]()
	}
	params, err := c.ListParameters()
	if err != nil {
		return openapi.Failed[[]*openapi.Parameter](err)
	}

	if r := vi.includeSource(c); r != nil {
		paths, _, err := IncludedPaths(c.Registry, r, vi.walkSettings(c))
		if err != nil {
			return openapi.Failed[[]*openapi.Parameter](err)
		}
		params = append(params, &openapi.Parameter{
			Name:        "include",
			In:          "query",
			Description: "Include relations in response. Available relations: " + strings.Join(paths, ", "),
			Schema: &openapi.Schema{
				Type:   openapi.TypeString("string"),
				Format: "comma-separated-array",
			},
		})
	}
	return openapi.Produced(params)
}

// includeSource returns the resource whose included declarations the
// operation offers: the first success response declaring includes, or the
// derived response resource.
func (vi ViewInspector) includeSource(c *openapi.Context) *resource.Resource {
	var found []*resource.Resource
	for _, o := range c.Operation.ResponseOverrides() {
		if o.IsSuccess() && o.Body.Resource != nil && o.Body.Resource.HasIncludes() {
			found = append(found, o.Body.Resource)
		}
	}
	if len(found) > 1 {
		vi.Settings.log(c).Warnf("More than one response serializer for view %s method %s provides included serializers, falling back to first one",
			c.View.Name, c.Method())
	}
	if len(found) > 0 {
		return found[0]
	}
	if r := c.DefaultResponseDecl().Body.Resource; r != nil && r.HasIncludes() {
		return r
	}
	return nil
}

// RequestBody wraps the resource object into {data}. Schemas declared
// explicitly are used as given.
func (vi ViewInspector) RequestBody(c *openapi.Context) openapi.Result[*openapi.RequestBody] {
	if !IsRequest(c.View) {
		return openapi.Deferred[*openapi.RequestBody]()
	}
	body, ok := c.RequestDecl()
	if !ok {
		return openapi.Produced[*openapi.RequestBody](nil)
	}
	if body.Schema != nil {
		return openapi.Produced(c.NewRequestBody(body.Schema))
	}

	rc := c.WithMode(c.RequestMode())
	data, err := rc.BodySchema(body)
	if err != nil {
		return openapi.Failed[*openapi.RequestBody](err)
	}
	if data == nil {
		return openapi.Produced[*openapi.RequestBody](nil)
	}
	vi.formatter(c).Format(data)
	return openapi.Produced(c.NewRequestBody(openapi.ObjectSchema(openapi.NewProperties().Set("data", data))))
}

// Responses describes the derived and declared responses.
func (vi ViewInspector) Responses(c *openapi.Context) openapi.Result[map[string]*openapi.Response] {
	if !IsResponse(c.View) {
		return openapi.Deferred[map[string]*openapi.Response]()
	}
	rc := c.WithMode(openapi.ModeResponse)
	out := make(map[string]*openapi.Response)
	for _, sb := range c.ResponseDecls() {
		var (
			schema *openapi.Schema
			err    error
		)
		switch {
		case sb.Default:
			schema, err = vi.defaultDocument(rc, sb.Body)
		case sb.IsSuccess() && sb.Body.Resource != nil && sb.Body.Schema == nil:
			schema, err = vi.document(rc, sb.Body)
		default:
			schema, err = rc.BodySchema(sb.Body)
		}
		if err != nil {
			return openapi.Failed[map[string]*openapi.Response](fmt.Errorf("response %s: %w", sb.Status, err))
		}
		out[sb.Status] = c.NewResponse(sb.Status, schema, sb.Body.Description)
	}
	return openapi.Produced(out)
}

// defaultDocument builds the derived success response. List responses
// carry a data array and are wrapped by the paginator.
func (vi ViewInspector) defaultDocument(c *openapi.Context, body openapi.Body) (*openapi.Schema, error) {
	switch c.Method() {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil, nil
	}
	if body.Resource == nil && c.Method() == http.MethodGet && c.Endpoint.IsList() {
		viewName := ""
		if c.View != nil {
			viewName = c.View.Name
		}
		vi.Settings.log(c).Warnf("Missing schema definition for list action of %s, have you defined get_serializer?", viewName)
	}

	schema, err := vi.document(c, body)
	if err != nil {
		return nil, err
	}
	if c.ShouldPage() {
		return c.ProbePaginatedResponse(c.View.Paginator, schema)
	}
	return schema, nil
}

// document builds {data, included} for a resource body.
//
// See: https://jsonapi.org/format/#document-top-level
func (vi ViewInspector) document(c *openapi.Context, body openapi.Body) (*openapi.Schema, error) {
	props := openapi.NewProperties()
	if body.Resource == nil {
		return openapi.ObjectSchema(props), nil
	}

	data, err := c.BodySchema(body)
	if err != nil {
		return nil, err
	}
	if data != nil {
		vi.formatter(c).Format(data)
		props.Set("data", data)
	}

	included, err := vi.included(c, body.Resource)
	if err != nil {
		return nil, err
	}
	if included != nil {
		props.Set("included", included)
	}
	return openapi.ObjectSchema(props), nil
}

// included builds the included member: an object keyed by resource type
// whose values are arrays of included resource objects.
func (vi ViewInspector) included(c *openapi.Context, r *resource.Resource) (*openapi.Schema, error) {
	_, reachable, err := IncludedPaths(c.Registry, r, vi.walkSettings(c))
	if err != nil {
		return nil, err
	}
	if len(reachable) == 0 {
		return nil, nil
	}

	ic := c.ForIncluded()
	props := openapi.NewProperties()
	for _, res := range reachable {
		ref, err := c.Components.Component(res, IncludedVariant, func() (*openapi.Schema, error) {
			schema, err := ic.ProbeSerializer(res)
			if err != nil || schema == nil {
				return schema, err
			}
			vi.formatter(c).Format(schema)
			return schema, nil
		})
		if err != nil {
			return nil, err
		}
		props.Set(vi.Settings.ResourceType(res), openapi.ArrayOf(ref))
	}

	schema := openapi.ObjectSchema(props)
	schema.Description = includedDescription
	return schema, nil
}

// walkSettings returns the settings with the operation logger as fallback.
func (vi ViewInspector) walkSettings(c *openapi.Context) Settings {
	s := vi.Settings
	if s.Logger == nil {
		s.Logger = c.Log()
	}
	return s
}

func (vi ViewInspector) formatter(c *openapi.Context) NameFormatter {
	return NameFormatter{Policy: vi.Settings.FormatFieldNames, Components: c.Components}
}
