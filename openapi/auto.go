package openapi

import (
	"fmt"
	"net/http"
)

// ViewInspector builds the query parameters, request body and responses of
// one operation. View inspectors are probed like the other inspectors: the
// first one that produces a value wins.
type ViewInspector interface {
	QueryParameters(c *Context) Result[[]*Parameter]
	RequestBody(c *Context) Result[*RequestBody]
	Responses(c *Context) Result[map[string]*Response]
}

// DefaultViewInspector describes plain REST views. It always produces.
type DefaultViewInspector struct{}

// QueryParameters returns the filter and pagination parameters of list
// endpoints.
func (DefaultViewInspector) QueryParameters(c *Context) Result[[]*Parameter] {
	params, err := c.ListParameters()
	if err != nil {
		return Failed[[]*Parameter](err)
	}
	return Produced(params)
}

// RequestBody describes the request payload in every parser media type.
func (DefaultViewInspector) RequestBody(c *Context) Result[*RequestBody] {
	body, ok := c.RequestDecl()
	if !ok {
		return Produced[*RequestBody](nil)
	}
	schema, err := c.WithMode(c.RequestMode()).BodySchema(body)
	if err != nil {
		return Failed[*RequestBody](err)
	}
	return Produced(c.NewRequestBody(schema))
}

// Responses describes every declared or derived response.
func (DefaultViewInspector) Responses(c *Context) Result[map[string]*Response] {
	rc := c.WithMode(ModeResponse)
	out := make(map[string]*Response)
	for _, sb := range c.ResponseDecls() {
		schema, err := rc.BodySchema(sb.Body)
		if err != nil {
			return Failed[map[string]*Response](fmt.Errorf("response %s: %w", sb.Status, err))
		}
		if sb.Default && schema != nil && c.ShouldPage() {
			if schema, err = c.ProbePaginatedResponse(c.View.Paginator, schema); err != nil {
				return Failed[map[string]*Response](err)
			}
		}
		out[sb.Status] = c.NewResponse(sb.Status, schema, sb.Body.Description)
	}
	return Produced(out)
}

// DefaultStatus returns the status of the derived success response.
func DefaultStatus(method string) string {
	switch method {
	case http.MethodPost:
		return "201"
	case http.MethodDelete:
		return "204"
	}
	return "200"
}

// RequestMode returns the mode of the request body: create for POST,
// update otherwise.
func (c *Context) RequestMode() Mode {
	if c.Endpoint.Method == http.MethodPost {
		return ModeCreate
	}
	return ModeUpdate
}

// ShouldPage reports whether the derived response is paginated.
func (c *Context) ShouldPage() bool {
	return c.View != nil && c.View.Paginator != nil && c.Endpoint.IsList()
}

// ListParameters returns the filter and pagination parameters of a list
// endpoint in backend order.
func (c *Context) ListParameters() ([]*Parameter, error) {
	if c.View == nil || !c.Endpoint.IsList() {
		return nil, nil
	}
	var params []*Parameter
	for _, b := range c.View.FilterBackends {
		p, err := c.ProbeFilter(b)
		if err != nil {
			return nil, err
		}
		params = append(params, p...)
	}
	if c.View.Paginator != nil {
		p, err := c.ProbePagination(c.View.Paginator)
		if err != nil {
			return nil, err
		}
		params = append(params, p...)
	}
	return params, nil
}

// RequestDecl returns the request payload: the override when declared,
// otherwise the view's resource for POST, PUT and PATCH.
func (c *Context) RequestDecl() (Body, bool) {
	if b, ok := c.Operation.RequestOverride(); ok {
		return b, !b.IsEmpty()
	}
	switch c.Endpoint.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if c.View != nil && c.View.Resource != nil {
			return Body{Resource: c.View.Resource}, true
		}
	}
	return Body{}, false
}

// DefaultResponseDecl returns the success response derived from the view.
func (c *Context) DefaultResponseDecl() StatusBody {
	sb := StatusBody{Status: DefaultStatus(c.Endpoint.Method), Default: true}
	switch c.Endpoint.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch:
		if c.View != nil && c.View.Resource != nil {
			sb.Body = Body{Resource: c.View.Resource, Many: c.Endpoint.IsList()}
		}
	}
	return sb
}

// ResponseDecls returns the responses of the operation: the derived
// success response unless a 2xx response is declared, followed by the
// declared ones.
func (c *Context) ResponseDecls() []StatusBody {
	overrides := c.Operation.ResponseOverrides()
	var out []StatusBody
	hasSuccess := false
	for _, o := range overrides {
		if o.IsSuccess() {
			hasSuccess = true
			break
		}
	}
	if !hasSuccess {
		out = append(out, c.DefaultResponseDecl())
	}
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].Status == o.Status {
				out[i] = o
				replaced = true
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

// BodySchema inspects a payload declaration. Resource bodies are probed
// through the serializer inspectors; lists become arrays.
func (c *Context) BodySchema(b Body) (*Schema, error) {
	if b.Schema != nil {
		return b.Schema, nil
	}
	if b.Resource == nil {
		return nil, nil
	}
	schema, err := c.ProbeSerializer(b.Resource)
	if err != nil || schema == nil {
		return nil, err
	}
	if b.Many {
		return ArrayOf(schema), nil
	}
	return schema, nil
}

// NewRequestBody wraps a schema into a request body for every parser media
// type, applying the operation overrides.
func (c *Context) NewRequestBody(schema *Schema) *RequestBody {
	if schema == nil {
		return nil
	}
	rb := &RequestBody{Required: true, Content: make(map[string]*MediaType)}
	if b := c.Operation; b != nil {
		rb.Description = b.meta.requestDescription
		if b.meta.requestRequired != nil {
			rb.Required = *b.meta.requestRequired
		}
	}
	for _, mt := range c.View.ParserTypes() {
		rb.Content[mt] = &MediaType{Schema: schema}
	}
	return rb
}

// NewResponse wraps a schema into a response for every renderer media type.
// A nil schema yields a response without content.
func (c *Context) NewResponse(status string, schema *Schema, description string) *Response {
	if description == "" {
		description = responseDescription(status)
	}
	resp := &Response{Description: description}
	if b := c.Operation; b != nil {
		if custom, ok := b.meta.responseDescriptions[status]; ok {
			resp.Description = custom
		}
		if headers, ok := b.meta.responseHeaders[status]; ok && len(headers) > 0 {
			resp.Headers = headers
		}
	}
	if schema != nil {
		resp.Content = make(map[string]*MediaType)
		for _, mt := range c.View.RendererTypes() {
			resp.Content[mt] = &MediaType{Schema: schema}
		}
	}
	return resp
}
