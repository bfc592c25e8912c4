package openapi

import (
	"encoding/json"
	"sort"
	"strings"
)

// Document represents the root of an OpenAPI v3.1.0 document.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI           string                `json:"openapi"`
	Info              Info                  `json:"info"`
	JSONSchemaDialect string                `json:"jsonSchemaDialect,omitempty"`
	Servers           []Server              `json:"servers,omitempty"`
	Paths             map[string]*PathItem  `json:"paths,omitempty"`
	Components        *Components           `json:"components,omitempty"`
	Tags              []Tag                 `json:"tags,omitempty"`
	Security          []SecurityRequirement `json:"security,omitempty"`
	ExternalDocs      *ExternalDocs         `json:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Summary        string   `json:"summary,omitempty" yaml:"summary"`
	Description    string   `json:"description,omitempty" yaml:"description"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact"`
	License        *License `json:"license,omitempty" yaml:"license"`
	Version        string   `json:"version" yaml:"version"`
}

// Contact represents contact information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name"`
	URL   string `json:"url,omitempty" yaml:"url"`
	Email string `json:"email,omitempty" yaml:"email"`
}

// License represents license information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#license-object
type License struct {
	Name       string `json:"name" yaml:"name"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier"`
	URL        string `json:"url,omitempty" yaml:"url"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Get         *Operation   `json:"get,omitempty"`
	Put         *Operation   `json:"put,omitempty"`
	Post        *Operation   `json:"post,omitempty"`
	Delete      *Operation   `json:"delete,omitempty"`
	Options     *Operation   `json:"options,omitempty"`
	Head        *Operation   `json:"head,omitempty"`
	Patch       *Operation   `json:"patch,omitempty"`
	Trace       *Operation   `json:"trace,omitempty"`
	Parameters  []*Parameter `json:"parameters,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Tags         []string              `json:"tags,omitempty"`
	Summary      string                `json:"summary,omitempty"`
	Description  string                `json:"description,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty"`
	OperationID  string                `json:"operationId,omitempty"`
	Parameters   []*Parameter          `json:"parameters,omitempty"`
	RequestBody  *RequestBody          `json:"requestBody,omitempty"`
	Responses    map[string]*Response  `json:"responses,omitempty"`
	Deprecated   bool                  `json:"deprecated,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty"`
}

// Parameter describes a single operation parameter.
// The "in" field determines the parameter location: "query", "header",
// "path", or "cookie". Parameters with the same name and location
// must be unique within an operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty"`
	Style       string  `json:"style,omitempty"`
	Explode     *bool   `json:"explode,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
	Example     any     `json:"example,omitempty"`
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// Response describes a single response from an API operation.
// The description field is REQUIRED by OpenAPI 3.1.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string                `json:"description"`
	Headers     map[string]*Header    `json:"headers,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType describes a media type with a schema and optional example.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema  *Schema `json:"schema,omitempty"`
	Example any     `json:"example,omitempty"`
}

// Header describes a single response header.
//
// See: https://spec.openapis.org/oas/v3.1.0#header-object
type Header struct {
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// SchemaType represents a JSON Schema type that can be a single string
// or an array of strings (per JSON Schema Draft 2020-12, section 6.1.1).
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type SchemaType struct {
	value []string
}

// TypeString creates a SchemaType with a single type.
func TypeString(t string) SchemaType {
	return SchemaType{value: []string{t}}
}

// TypeArray creates a SchemaType with multiple types (e.g., ["string", "null"]).
// Used for nullable types per JSON Schema Draft 2020-12.
func TypeArray(types ...string) SchemaType {
	return SchemaType{value: types}
}

// Values returns the underlying type values.
func (st SchemaType) Values() []string {
	return st.value
}

// Is reports whether t is one of the type values.
func (st SchemaType) Is(t string) bool {
	for _, v := range st.value {
		if v == t {
			return true
		}
	}
	return false
}

// IsZero reports whether the type is unset, so that omitzero drops it.
func (st SchemaType) IsZero() bool {
	return len(st.value) == 0
}

// MarshalJSON encodes the schema type as a JSON string (single type)
// or JSON array (multiple types).
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.value) == 1 {
		return json.Marshal(st.value[0])
	}
	return json.Marshal(st.value)
}

// UnmarshalJSON decodes the schema type from either a JSON string or array.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		st.value = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	st.value = arr
	return nil
}

// Schema represents a JSON Schema object used in OpenAPI v3.1.0.
// Properties keep their insertion order. Extensions hold "x-" keywords that
// are emitted inline next to the standard ones.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://json-schema.org/draft/2020-12/json-schema-core
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type   SchemaType `json:"type,omitzero"`
	Format string     `json:"format,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty"`

	MultipleOf       *float64 `json:"multipleOf,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	Properties           *Properties `json:"properties,omitempty"`
	AdditionalProperties *Schema     `json:"additionalProperties,omitempty"`
	Required             []string    `json:"required,omitempty"`
	MinProperties        *int        `json:"minProperties,omitempty"`
	MaxProperties        *int        `json:"maxProperties,omitempty"`

	Enum  []any `json:"enum,omitempty"`
	Const any   `json:"const,omitzero"`

	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`

	Extensions map[string]any `json:"-"`
}

// SetExtension sets an "x-" keyword. The prefix is added when missing.
func (s *Schema) SetExtension(name string, value any) {
	if !strings.HasPrefix(name, "x-") {
		name = "x-" + name
	}
	if s.Extensions == nil {
		s.Extensions = make(map[string]any)
	}
	s.Extensions[name] = value
}

// schemaFields is Schema without its JSON methods.
type schemaFields Schema

// MarshalJSON encodes the schema and appends extensions in key order.
func (s Schema) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(schemaFields(s))
	if err != nil || len(s.Extensions) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(s.Extensions))
	for k := range s.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]byte, 0, len(data)+32*len(keys))
	out = append(out, data[:len(data)-1]...)
	for i, k := range keys {
		if i > 0 || len(data) > 2 {
			out = append(out, ',')
		}
		key, _ := json.Marshal(k)
		value, err := json.Marshal(s.Extensions[k])
		if err != nil {
			return nil, err
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, value...)
	}
	return append(out, '}'), nil
}

// UnmarshalJSON decodes the schema and collects "x-" keywords into Extensions.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var fields schemaFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if !strings.HasPrefix(k, "x-") {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		if fields.Extensions == nil {
			fields.Extensions = make(map[string]any)
		}
		fields.Extensions[k] = value
	}
	*s = Schema(fields)
	return nil
}

// Components holds reusable OpenAPI objects.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	Parameters      map[string]*Parameter      `json:"parameters,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// Tag adds metadata to a single tag used by Operation Objects.
//
// See: https://spec.openapis.org/oas/v3.1.0#tag-object
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs"`
}

// SecurityRequirement lists required security schemes for an operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#security-requirement-object
type SecurityRequirement map[string][]string

// ExternalDocs allows referencing external documentation.
//
// See: https://spec.openapis.org/oas/v3.1.0#external-documentation-object
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
}

// SecurityScheme defines a security scheme used by API operations.
//
// See: https://spec.openapis.org/oas/v3.1.0#security-scheme-object
type SecurityScheme struct {
	Type         string `json:"type" yaml:"type"`
	Description  string `json:"description,omitempty" yaml:"description"`
	Name         string `json:"name,omitempty" yaml:"name"`
	In           string `json:"in,omitempty" yaml:"in"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat"`
}
