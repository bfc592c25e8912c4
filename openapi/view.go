package openapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// DefaultMediaType is used when a view declares no parsers or renderers.
const DefaultMediaType = "application/json"

// Action is a viewset action.
type Action string

const (
	ActionList          Action = "list"
	ActionCreate        Action = "create"
	ActionRetrieve      Action = "retrieve"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// CRUD lists every viewset action in routing order.
var CRUD = []Action{ActionList, ActionCreate, ActionRetrieve, ActionUpdate, ActionPartialUpdate, ActionDestroy}

type actionRoute struct {
	method string
	detail bool
}

var actionRoutes = map[Action]actionRoute{
	ActionList:          {http.MethodGet, false},
	ActionCreate:        {http.MethodPost, false},
	ActionRetrieve:      {http.MethodGet, true},
	ActionUpdate:        {http.MethodPut, true},
	ActionPartialUpdate: {http.MethodPatch, true},
	ActionDestroy:       {http.MethodDelete, true},
}

// Endpoint is one method on one path of a view.
type Endpoint struct {
	// Path is the route template, e.g. "/projects/{id:int}/".
	Path   string
	Method string
	// Action is empty for plain views.
	Action Action
}

// IsList reports whether the endpoint lists objects: the list action of a
// viewset, or a GET on a plain view whose last path segment is not a
// parameter.
func (e Endpoint) IsList() bool {
	if e.Action != "" {
		return e.Action == ActionList
	}
	if e.Method != http.MethodGet {
		return false
	}
	segments := strings.Split(strings.Trim(e.Path, "/"), "/")
	return !strings.Contains(segments[len(segments)-1], "{")
}

// OperationSuffix returns the action part of the default operation ID.
func (e Endpoint) OperationSuffix() string {
	switch e.Method {
	case http.MethodGet:
		if e.IsList() {
			return "list"
		}
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut:
		return "update"
	case http.MethodPatch:
		return "partial_update"
	case http.MethodDelete:
		return "delete"
	}
	return strings.ToLower(e.Method)
}

// View describes one API view: the resource it serves, its content
// negotiation and its list behavior. A viewset routes its actions under a
// prefix; a plain view serves a fixed path with explicit methods.
type View struct {
	Name string
	// Basename prefixes operation IDs; empty derives it from the path.
	Basename string
	Resource *resource.Resource
	// ResourceName overrides the resource type of the view's top-level data.
	ResourceName string

	Parsers        []string
	Renderers      []string
	Paginator      *resource.Paginator
	FilterBackends []resource.FilterBackend
	Tags           []string

	// Inspector is probed before the inspectors configured on the spec.
	Inspector ViewInspector

	prefix  string
	lookup  string
	actions []Action

	path    string
	methods []string

	defaults *groupDefaults
	ops      map[string]*OperationBuilder
}

// NewViewSet creates a viewset routing actions under "/<prefix>/" and
// "/<prefix>/{lookup}/". No actions means every CRUD action.
func NewViewSet(name, prefix string, r *resource.Resource, actions ...Action) *View {
	if len(actions) == 0 {
		actions = CRUD
	}
	return &View{
		Name:     name,
		Resource: r,
		prefix:   strings.Trim(prefix, "/"),
		actions:  actions,
		ops:      make(map[string]*OperationBuilder),
	}
}

// NewAPIView creates a plain view serving the given methods on path.
func NewAPIView(name, path string, r *resource.Resource, methods ...string) *View {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	return &View{
		Name:     name,
		Resource: r,
		path:     path,
		methods:  upper,
		ops:      make(map[string]*OperationBuilder),
	}
}

// WithParsers sets the request media types.
func (v *View) WithParsers(mediaTypes ...string) *View {
	v.Parsers = mediaTypes
	return v
}

// WithRenderers sets the response media types.
func (v *View) WithRenderers(mediaTypes ...string) *View {
	v.Renderers = mediaTypes
	return v
}

// WithMediaType sets both parsers and renderers.
func (v *View) WithMediaType(mediaTypes ...string) *View {
	v.Parsers = mediaTypes
	v.Renderers = mediaTypes
	return v
}

// Paginate sets the list paginator.
func (v *View) Paginate(p *resource.Paginator) *View {
	v.Paginator = p
	return v
}

// Filter appends filter backends.
func (v *View) Filter(backends ...resource.FilterBackend) *View {
	v.FilterBackends = append(v.FilterBackends, backends...)
	return v
}

// Lookup sets the detail route parameter, optionally with a macro such as
// "custom_id:int".
func (v *View) Lookup(lookup string) *View {
	v.lookup = lookup
	return v
}

// ParserTypes returns the request media types.
func (v *View) ParserTypes() []string {
	if v == nil || len(v.Parsers) == 0 {
		return []string{DefaultMediaType}
	}
	return v.Parsers
}

// RendererTypes returns the response media types.
func (v *View) RendererTypes() []string {
	if v == nil || len(v.Renderers) == 0 {
		return []string{DefaultMediaType}
	}
	return v.Renderers
}

// Op returns the operation builder for an action name or an HTTP method.
func (v *View) Op(key string) *OperationBuilder {
	if b, ok := v.ops[key]; ok {
		return b
	}
	if v.ops == nil {
		v.ops = make(map[string]*OperationBuilder)
	}
	b := newOperationBuilder()
	if v.defaults != nil {
		v.defaults.apply(b)
	}
	v.ops[key] = b
	return b
}

// operation returns the builder configured for ep, creating an empty one
// carrying the group defaults when none was configured.
func (v *View) operation(ep Endpoint) *OperationBuilder {
	if ep.Action != "" {
		if b, ok := v.ops[string(ep.Action)]; ok {
			return b
		}
	}
	return v.Op(ep.Method)
}

// lookupParam returns the detail route parameter.
func (v *View) lookupParam() string {
	if v.lookup != "" {
		return v.lookup
	}
	if v.Resource != nil {
		if pk := v.Resource.Model.PrimaryKey(); pk != nil {
			return pk.Name
		}
	}
	return "id"
}

// Endpoints returns the routed endpoints of the view in routing order.
func (v *View) Endpoints() []Endpoint {
	if v.path != "" {
		out := make([]Endpoint, 0, len(v.methods))
		for _, m := range v.methods {
			out = append(out, Endpoint{Path: v.path, Method: m})
		}
		return out
	}

	out := make([]Endpoint, 0, len(v.actions))
	for _, a := range CRUD {
		if !slices.Contains(v.actions, a) {
			continue
		}
		route := actionRoutes[a]
		path := "/" + v.prefix + "/"
		if route.detail {
			path += "{" + v.lookupParam() + "}/"
		}
		out = append(out, Endpoint{Path: path, Method: route.method, Action: a})
	}
	return out
}

// operationID returns the default operation ID of an endpoint.
func (v *View) operationID(ep Endpoint, openAPIPath string) string {
	base := v.Basename
	if base == "" {
		var parts []string
		for _, seg := range strings.Split(strings.Trim(openAPIPath, "/"), "/") {
			if seg != "" && !strings.HasPrefix(seg, "{") {
				parts = append(parts, seg)
			}
		}
		base = strings.Join(parts, "_")
	}
	return base + "_" + ep.OperationSuffix()
}

// defaultTags returns the view tags, or the first static path segment.
func (v *View) defaultTags(openAPIPath string) []string {
	if len(v.Tags) > 0 {
		return v.Tags
	}
	for _, seg := range strings.Split(strings.Trim(openAPIPath, "/"), "/") {
		if seg != "" && !strings.HasPrefix(seg, "{") {
			return []string{seg}
		}
	}
	return nil
}
