// Package manifest loads API descriptions from YAML: models, resource
// descriptors, views and the JSON:API settings. A manifest is turned into a
// resource.Registry and an openapi.Spec with the JSON:API inspectors
// registered.
//
//	info:
//	  title: Projects
//	  version: 1.0.0
//	jsonapi:
//	  formatFieldNames: dasherize
//	  formatTypes: dasherize
//	  pluralizeTypes: true
//	models:
//	  - name: Project
//	    columns:
//	      - {name: id, type: auto, primaryKey: true}
//	      - {name: name, type: string}
//	resources:
//	  - name: ProjectSerializer
//	    model: Project
//	    fields:
//	      - {name: id, kind: integer, readOnly: true}
//	      - {name: name, kind: string, required: true}
//	views:
//	  - name: ProjectViewSet
//	    prefix: projects
//	    resource: ProjectSerializer
//	    jsonapi: true
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/jsonapi-openapi/jsonapi"
	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// ErrInvalid is returned for manifests that reference unknown names or
// declare inconsistent views.
var ErrInvalid = errors.New("manifest: invalid manifest")

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Info         openapi.Info                       `yaml:"info"`
	Servers      []openapi.Server                   `yaml:"servers"`
	Tags         []openapi.Tag                      `yaml:"tags"`
	Security     []openapi.SecurityRequirement      `yaml:"security"`
	SecurityDefs map[string]*openapi.SecurityScheme `yaml:"securitySchemes"`

	// JSONAPI holds the plugin settings. Absent settings use
	// jsonapi.DefaultSettings.
	JSONAPI *jsonapi.Settings `yaml:"jsonapi"`

	Models    []Model    `yaml:"models"`
	Resources []Resource `yaml:"resources"`
	Views     []View     `yaml:"views"`
}

// Model declares a resource.Model.
type Model struct {
	Name         string            `yaml:"name"`
	ResourceName string            `yaml:"resourceName"`
	Columns      []resource.Column `yaml:"columns"`
}

// Resource declares a resource descriptor.
type Resource struct {
	Name   string  `yaml:"name"`
	Model  string  `yaml:"model"`
	Type   string  `yaml:"type"`
	Fields []Field `yaml:"fields"`
	// Include maps include names to resource names or "self".
	Include []Include `yaml:"include"`
}

// Include declares one included resource.
type Include struct {
	Name     string `yaml:"name"`
	Resource string `yaml:"resource"`
}

// Field declares a field descriptor.
type Field struct {
	Name     string            `yaml:"name"`
	Source   string            `yaml:"source"`
	Kind     resource.Kind     `yaml:"kind"`
	Relation resource.Relation `yaml:"relation"`
	Many     bool              `yaml:"many"`

	ReadOnly  bool `yaml:"readOnly"`
	WriteOnly bool `yaml:"writeOnly"`
	Required  bool `yaml:"required"`
	AllowNull bool `yaml:"allowNull"`

	RelatedType  string `yaml:"relatedType"`
	RelatedModel string `yaml:"relatedModel"`
	// Nested names the resource used as the field value.
	Nested string `yaml:"nested"`

	Links struct {
		Related bool `yaml:"related"`
		Self    bool `yaml:"self"`
	} `yaml:"links"`

	Help        string   `yaml:"help"`
	Default     any      `yaml:"default"`
	Choices     []string `yaml:"choices"`
	Constraints string   `yaml:"constraints"`
}

// View declares a viewset (prefix) or a plain view (path and methods).
type View struct {
	Name         string   `yaml:"name"`
	Basename     string   `yaml:"basename"`
	Resource     string   `yaml:"resource"`
	ResourceName string   `yaml:"resourceName"`
	Tags         []string `yaml:"tags"`

	Prefix  string           `yaml:"prefix"`
	Lookup  string           `yaml:"lookup"`
	Actions []openapi.Action `yaml:"actions"`

	Path    string   `yaml:"path"`
	Methods []string `yaml:"methods"`

	// JSONAPI sets the JSON:API media type as parser and renderer.
	JSONAPI   bool     `yaml:"jsonapi"`
	Parsers   []string `yaml:"parsers"`
	Renderers []string `yaml:"renderers"`

	Paginator *Paginator `yaml:"paginator"`
	Filters   []Filter   `yaml:"filters"`

	// Operations holds overrides keyed by action name or HTTP method.
	Operations map[string]Operation `yaml:"operations"`
}

// Paginator declares a resource.Paginator.
type Paginator struct {
	Style       resource.PaginationStyle `yaml:"style"`
	JSONAPI     bool                     `yaml:"jsonapi"`
	PageParam   string                   `yaml:"pageParam"`
	SizeParam   string                   `yaml:"sizeParam"`
	LimitParam  string                   `yaml:"limitParam"`
	OffsetParam string                   `yaml:"offsetParam"`
}

// Filter declares a resource.FilterBackend.
type Filter struct {
	Kind   resource.FilterKind    `yaml:"kind"`
	Fields []resource.FilterField `yaml:"fields"`
	Param  string                 `yaml:"param"`
}

// Operation declares the overrides of one operation.
type Operation struct {
	OperationID string   `yaml:"operationId"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Deprecated  bool     `yaml:"deprecated"`

	Request   *Body           `yaml:"request"`
	Responses map[string]Body `yaml:"responses"`
}

// Body declares a payload: a resource, a list of a resource, or a raw
// schema. An empty body declares a response without content.
type Body struct {
	Resource    string    `yaml:"resource"`
	Many        bool      `yaml:"many"`
	Schema      yaml.Node `yaml:"schema"`
	Description string    `yaml:"description"`
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// Settings returns the JSON:API settings of the manifest.
func (m *Manifest) Settings() jsonapi.Settings {
	if m.JSONAPI == nil {
		return jsonapi.DefaultSettings()
	}
	return *m.JSONAPI
}
