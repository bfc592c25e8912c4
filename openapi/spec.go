package openapi

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// macroTypeMap maps route macros to OpenAPI type and format.
var macroTypeMap = map[string][2]string{
	"uuid":     {"string", "uuid"},
	"int":      {"integer", ""},
	"float":    {"number", ""},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
	"domain":   {"string", "hostname"},
}

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// Spec collects views and builds a complete OpenAPI Document from them.
type Spec struct {
	info     Info
	servers  []Server
	registry *resource.Registry
	views    []*View

	inspectors Inspectors
	logger     logrus.FieldLogger

	externalDocs    *ExternalDocs
	security        []SecurityRequirement
	tags            []Tag
	securitySchemes map[string]*SecurityScheme
}

// NewSpec creates a new spec builder with the given API info. Resources
// referenced by views resolve their included declarations and related
// models through reg.
func NewSpec(info Info, reg *resource.Registry) *Spec {
	if reg == nil {
		reg = resource.NewRegistry()
	}
	return &Spec{
		info:       info,
		registry:   reg,
		inspectors: DefaultInspectors(),
		logger:     logrus.StandardLogger(),
	}
}

// Registry returns the resource registry of the spec.
func (s *Spec) Registry() *resource.Registry {
	return s.registry
}

// SetLogger sets the logger passed to inspectors.
func (s *Spec) SetLogger(logger logrus.FieldLogger) *Spec {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Inspectors returns the inspector configuration.
func (s *Spec) Inspectors() Inspectors {
	return s.inspectors
}

// SetInspectors replaces the inspector configuration.
func (s *Spec) SetInspectors(ins Inspectors) *Spec {
	s.inspectors = ins
	return s
}

// AddServer adds a server to the spec.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// SetExternalDocs sets the document-level external documentation link.
func (s *Spec) SetExternalDocs(url, description string) *Spec {
	s.externalDocs = &ExternalDocs{URL: url, Description: description}
	return s
}

// SetSecurity sets the document-level security requirements.
func (s *Spec) SetSecurity(reqs ...SecurityRequirement) *Spec {
	s.security = reqs
	return s
}

// AddTag adds a user-defined tag with optional description and external docs.
func (s *Spec) AddTag(tag Tag) *Spec {
	s.tags = append(s.tags, tag)
	return s
}

// AddSecurityScheme registers a reusable security scheme in components.
func (s *Spec) AddSecurityScheme(name string, scheme *SecurityScheme) *Spec {
	if s.securitySchemes == nil {
		s.securitySchemes = make(map[string]*SecurityScheme)
	}
	s.securitySchemes[name] = scheme
	return s
}

// Register adds views to the spec in routing order.
func (s *Spec) Register(views ...*View) *Spec {
	s.views = append(s.views, views...)
	return s
}

// Views returns the registered views.
func (s *Spec) Views() []*View {
	return s.views
}

// ViewSet creates and registers a viewset.
func (s *Spec) ViewSet(name, prefix string, r *resource.Resource, actions ...Action) *View {
	v := NewViewSet(name, prefix, r, actions...)
	s.Register(v)
	return v
}

// APIView creates and registers a plain view.
func (s *Spec) APIView(name, path string, r *resource.Resource, methods ...string) *View {
	v := NewAPIView(name, path, r, methods...)
	s.Register(v)
	return v
}

// Group creates a new ViewGroup for applying shared defaults to a logical
// group of views.
func (s *Spec) Group() *ViewGroup {
	return &ViewGroup{spec: s}
}

// Build inspects every registered view and assembles a complete OpenAPI
// Document. The first fatal inspection error aborts the build.
func (s *Spec) Build() (*Document, error) {
	comps := NewSchemaRegistry()
	doc := &Document{
		OpenAPI:      "3.1.0",
		Info:         s.info,
		Servers:      s.servers,
		Paths:        make(map[string]*PathItem),
		ExternalDocs: s.externalDocs,
		Security:     s.security,
	}

	for _, v := range s.views {
		for _, ep := range v.Endpoints() {
			openAPIPath, pathParams := parsePath(ep.Path)
			op, err := s.buildOperation(v, ep, openAPIPath, comps)
			if err != nil {
				return nil, fmt.Errorf("openapi: %s %s: %w", ep.Method, openAPIPath, err)
			}

			pathItem, ok := doc.Paths[openAPIPath]
			if !ok {
				pathItem = &PathItem{}
				doc.Paths[openAPIPath] = pathItem
			}
			pathItem.Parameters = mergeParameters(pathItem.Parameters, pathParams)
			assignOperation(pathItem, ep.Method, op)
		}
	}

	doc.Components = s.buildComponents(comps)
	doc.Tags = s.mergeTags(doc.Paths)

	return doc, nil
}

// buildOperation probes the view inspectors for one endpoint.
func (s *Spec) buildOperation(v *View, ep Endpoint, openAPIPath string, comps *SchemaRegistry) (*Operation, error) {
	builder := v.operation(ep)
	c := NewContext(v, ep, s.registry, comps, s.inspectors, s.logger)
	c.Operation = builder

	views := s.inspectors.Views
	if v.Inspector != nil {
		views = append([]ViewInspector{v.Inspector}, views...)
	}

	query, err := probeView(views, func(vi ViewInspector) Result[[]*Parameter] { return vi.QueryParameters(c) })
	if err != nil {
		return nil, err
	}
	body, err := probeView(views, func(vi ViewInspector) Result[*RequestBody] { return vi.RequestBody(c) })
	if err != nil {
		return nil, err
	}
	responses, err := probeView(views, func(vi ViewInspector) Result[map[string]*Response] { return vi.Responses(c) })
	if err != nil {
		return nil, err
	}

	op := builder.buildOperation(v.operationID(ep, openAPIPath), v.defaultTags(openAPIPath))
	op.Parameters = mergeParameters(query, builder.meta.parameters)
	op.RequestBody = body
	op.Responses = responses
	return op, nil
}

// probeView returns the first value produced by the view inspectors.
func probeView[T any](views []ViewInspector, call func(ViewInspector) Result[T]) (T, error) {
	for _, vi := range views {
		if res := call(vi); res.Handled() {
			return res.Unwrap()
		}
	}
	var zero T
	return zero, nil
}

// buildComponents assembles the Components object from generated schemas
// and the registered security schemes.
func (s *Spec) buildComponents(comps *SchemaRegistry) *Components {
	schemas := comps.Schemas()
	if len(schemas) == 0 && len(s.securitySchemes) == 0 {
		return nil
	}

	comp := &Components{}
	if len(schemas) > 0 {
		comp.Schemas = schemas
	}
	if len(s.securitySchemes) > 0 {
		comp.SecuritySchemes = s.securitySchemes
	}
	return comp
}

// mergeTags combines auto-collected tags from operations with user-defined tags.
// User-defined tags take precedence (their description and externalDocs are kept).
// Tags not seen in operations but defined by the user are still included.
// The result is sorted alphabetically.
func (s *Spec) mergeTags(paths map[string]*PathItem) []Tag {
	userTags := make(map[string]Tag, len(s.tags))
	for _, tag := range s.tags {
		userTags[tag.Name] = tag
	}

	seen := make(map[string]bool)
	var tags []Tag

	for _, pathItem := range paths {
		for _, op := range []*Operation{
			pathItem.Get, pathItem.Post, pathItem.Put,
			pathItem.Delete, pathItem.Patch, pathItem.Head,
			pathItem.Options, pathItem.Trace,
		} {
			if op == nil {
				continue
			}
			for _, tagName := range op.Tags {
				if seen[tagName] {
					continue
				}
				seen[tagName] = true
				if userTag, ok := userTags[tagName]; ok {
					tags = append(tags, userTag)
				} else {
					tags = append(tags, Tag{Name: tagName})
				}
			}
		}
	}

	for _, tag := range s.tags {
		if !seen[tag.Name] {
			seen[tag.Name] = true
			tags = append(tags, tag)
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags
}

// assignOperation assigns an operation to the correct HTTP method field
// on the path item.
func assignOperation(pathItem *PathItem, method string, op *Operation) {
	switch method {
	case http.MethodGet:
		pathItem.Get = op
	case http.MethodPost:
		pathItem.Post = op
	case http.MethodPut:
		pathItem.Put = op
	case http.MethodDelete:
		pathItem.Delete = op
	case http.MethodPatch:
		pathItem.Patch = op
	case http.MethodHead:
		pathItem.Head = op
	case http.MethodOptions:
		pathItem.Options = op
	case http.MethodTrace:
		pathItem.Trace = op
	}
}

// parsePath extracts variables from a route template, converts it to
// OpenAPI format, and generates parameter objects.
func parsePath(tpl string) (string, []*Parameter) {
	var params []*Parameter

	openAPIPath := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		varName, macroName, _ := strings.Cut(inner, ":")

		param := &Parameter{
			Name:     varName,
			In:       "path",
			Required: true,
			Schema:   &Schema{Type: TypeString("string")},
		}

		if macroName != "" {
			if typeInfo, ok := macroTypeMap[macroName]; ok {
				param.Schema = &Schema{Type: TypeString(typeInfo[0])}
				if typeInfo[1] != "" {
					param.Schema.Format = typeInfo[1]
				}
			}
		}

		params = append(params, param)
		return "{" + varName + "}"
	})

	return openAPIPath, params
}
