package openapi

import (
	"net/http"
	"strconv"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// Body declares a request or response payload. A resource body is inspected
// through the serializer inspectors; a schema body is used as is; an empty
// body has no content.
type Body struct {
	Resource    *resource.Resource
	Many        bool
	Schema      *Schema
	Description string
}

// Many declares a list of r.
func Many(r *resource.Resource) Body {
	return Body{Resource: r, Many: true}
}

// IsEmpty reports whether the body has no content.
func (b Body) IsEmpty() bool {
	return b.Resource == nil && b.Schema == nil
}

// bodyOf normalizes the payload values accepted by the builder: nil,
// *resource.Resource, Body, *Schema and a plain description string.
func bodyOf(v any) Body {
	switch b := v.(type) {
	case nil:
		return Body{}
	case Body:
		return b
	case *resource.Resource:
		return Body{Resource: b}
	case *Schema:
		return Body{Schema: b}
	case string:
		return Body{Description: b}
	}
	return Body{}
}

// StatusBody is a response payload for one status key.
type StatusBody struct {
	Status string
	Body   Body
	// Default marks the response derived from the view instead of declared
	// on the operation.
	Default bool
}

// IsSuccess reports whether the status is a 2xx code.
func (s StatusBody) IsSuccess() bool {
	code, err := strconv.Atoi(s.Status)
	return err == nil && code >= 200 && code < 300
}

// operationMeta stores metadata collected via the fluent builder
// before the final spec is built. Fields correspond to the Operation Object.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type operationMeta struct {
	operationID  string
	summary      string
	description  string
	tags         []string
	deprecated   bool
	parameters   []*Parameter
	security     []SecurityRequirement
	externalDocs *ExternalDocs

	request            *Body
	requestDescription string
	requestRequired    *bool // nil = default (true), non-nil = explicit

	responses            []StatusBody
	responseDescriptions map[string]string             // statusKey -> custom description
	responseHeaders      map[string]map[string]*Header // statusKey -> headerName -> header
}

// OperationBuilder provides a fluent API for overriding the generated
// metadata of one view operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type OperationBuilder struct {
	meta *operationMeta
}

func newOperationBuilder() *OperationBuilder {
	return &OperationBuilder{meta: &operationMeta{}}
}

// OperationID sets a custom operation ID, overriding the derived one.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (operationId)
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	b.meta.operationID = id
	return b
}

// Summary sets the operation summary.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (summary)
func (b *OperationBuilder) Summary(s string) *OperationBuilder {
	b.meta.summary = s
	return b
}

// Description sets the operation description.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (description)
func (b *OperationBuilder) Description(d string) *OperationBuilder {
	b.meta.description = d
	return b
}

// Tags adds one or more tags to the operation. Tagged operations no longer
// receive the tag derived from the path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (tags)
func (b *OperationBuilder) Tags(tags ...string) *OperationBuilder {
	b.meta.tags = append(b.meta.tags, tags...)
	return b
}

// Deprecated marks the operation as deprecated.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (deprecated)
func (b *OperationBuilder) Deprecated() *OperationBuilder {
	b.meta.deprecated = true
	return b
}

// Request overrides the request payload. The body can be a
// *resource.Resource, a Body (see Many), a *Schema, or nil to drop the
// request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
func (b *OperationBuilder) Request(body any) *OperationBuilder {
	req := bodyOf(body)
	b.meta.request = &req
	return b
}

// RequestDescription sets the description for the request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object (description)
func (b *OperationBuilder) RequestDescription(desc string) *OperationBuilder {
	b.meta.requestDescription = desc
	return b
}

// RequestRequired sets whether the request body is required.
// By default, request bodies are required (true).
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object (required)
func (b *OperationBuilder) RequestRequired(required bool) *OperationBuilder {
	b.meta.requestRequired = &required
	return b
}

// Response declares the response for the given HTTP status code. The body
// accepts the same values as Request plus a description string. Declaring
// any 2xx response replaces the response derived from the view.
//
// See: https://spec.openapis.org/oas/v3.1.0#responses-object
// See: https://spec.openapis.org/oas/v3.1.0#response-object
func (b *OperationBuilder) Response(statusCode int, body any) *OperationBuilder {
	return b.setResponse(strconv.Itoa(statusCode), bodyOf(body))
}

// DefaultResponse declares the "default" response, which catches any
// status code not covered by specific responses.
//
// See: https://spec.openapis.org/oas/v3.1.0#responses-object (default)
func (b *OperationBuilder) DefaultResponse(body any) *OperationBuilder {
	return b.setResponse("default", bodyOf(body))
}

func (b *OperationBuilder) setResponse(key string, body Body) *OperationBuilder {
	for i := range b.meta.responses {
		if b.meta.responses[i].Status == key {
			b.meta.responses[i].Body = body
			return b
		}
	}
	b.meta.responses = append(b.meta.responses, StatusBody{Status: key, Body: body})
	return b
}

// ResponseHeader adds a header to the response for the given HTTP status code.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object (headers)
func (b *OperationBuilder) ResponseHeader(statusCode int, name string, h *Header) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseHeaders == nil {
		b.meta.responseHeaders = make(map[string]map[string]*Header)
	}
	if b.meta.responseHeaders[key] == nil {
		b.meta.responseHeaders[key] = make(map[string]*Header)
	}
	b.meta.responseHeaders[key][name] = h
	return b
}

// ResponseDescription overrides the auto-generated description for a response.
// By default, descriptions are derived from HTTP status text (e.g., "OK", "Not Found").
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object (description)
func (b *OperationBuilder) ResponseDescription(statusCode int, desc string) *OperationBuilder {
	key := strconv.Itoa(statusCode)
	if b.meta.responseDescriptions == nil {
		b.meta.responseDescriptions = make(map[string]string)
	}
	b.meta.responseDescriptions[key] = desc
	return b
}

// Parameter adds a custom parameter to the operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
func (b *OperationBuilder) Parameter(param *Parameter) *OperationBuilder {
	b.meta.parameters = append(b.meta.parameters, param)
	return b
}

// Security sets operation-level security requirements.
// Call with no arguments to explicitly mark the operation as unauthenticated
// (overrides document-level security).
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (security)
// See: https://spec.openapis.org/oas/v3.1.0#security-requirement-object
func (b *OperationBuilder) Security(reqs ...SecurityRequirement) *OperationBuilder {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	b.meta.security = reqs
	return b
}

// ExternalDocs sets external documentation for the operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#external-documentation-object
func (b *OperationBuilder) ExternalDocs(url, description string) *OperationBuilder {
	b.meta.externalDocs = &ExternalDocs{URL: url, Description: description}
	return b
}

// RequestOverride returns the request payload override.
func (b *OperationBuilder) RequestOverride() (Body, bool) {
	if b == nil || b.meta.request == nil {
		return Body{}, false
	}
	return *b.meta.request, true
}

// ResponseOverrides returns the declared responses in declaration order.
func (b *OperationBuilder) ResponseOverrides() []StatusBody {
	if b == nil {
		return nil
	}
	return b.meta.responses
}

// mergeParameters combines generated parameters with custom parameters.
// Custom parameters with the same name+in override the generated ones.
// In OpenAPI, parameter uniqueness is determined by name and location (in).
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (parameters)
func mergeParameters(auto, custom []*Parameter) []*Parameter {
	if len(auto) == 0 && len(custom) == 0 {
		return nil
	}

	overrides := make(map[[2]string]struct{}, len(custom))
	for _, p := range custom {
		overrides[[2]string{p.Name, p.In}] = struct{}{}
	}

	var merged []*Parameter
	for _, p := range auto {
		if _, ok := overrides[[2]string{p.Name, p.In}]; !ok {
			merged = append(merged, p)
		}
	}

	merged = append(merged, custom...)
	return merged
}

// responseDescription returns a human-readable description for a response key.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object (description)
func responseDescription(key string) string {
	if key == "default" {
		return "Default response"
	}
	code, err := strconv.Atoi(key)
	if err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return key
}

// buildOperation assembles the Operation Object from the collected metadata.
// The derived ID and tags apply unless the builder overrides them.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
func (b *OperationBuilder) buildOperation(operationID string, tags []string) *Operation {
	if b.meta.operationID != "" {
		operationID = b.meta.operationID
	}
	if len(b.meta.tags) > 0 {
		tags = b.meta.tags
	}
	return &Operation{
		OperationID:  operationID,
		Summary:      b.meta.summary,
		Description:  b.meta.description,
		Tags:         tags,
		Deprecated:   b.meta.deprecated,
		Security:     b.meta.security,
		ExternalDocs: b.meta.externalDocs,
	}
}
