package openapi

import (
	"strconv"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// groupDefaults holds the default metadata that a ViewGroup applies
// to every view and operation it creates.
type groupDefaults struct {
	tags         []string
	security     []SecurityRequirement
	securitySet  bool // distinguishes nil (inherit) from empty (public)
	deprecated   bool
	parameters   []*Parameter
	externalDocs *ExternalDocs

	responses            []StatusBody
	responseDescriptions map[string]string // statusKey -> custom description

	parsers   []string
	renderers []string
	paginator *resource.Paginator
	filters   []resource.FilterBackend
	inspector ViewInspector
}

// ViewGroup provides shared defaults for a logical group of views: content
// negotiation, pagination, filters and operation metadata. Views created
// through the group are registered on the parent Spec.
type ViewGroup struct {
	spec     *Spec
	defaults groupDefaults
}

// Tags appends tags to the group defaults. Operations created through
// this group will inherit these tags and may add more via their own Tags call.
func (g *ViewGroup) Tags(tags ...string) *ViewGroup {
	g.defaults.tags = append(g.defaults.tags, tags...)
	return g
}

// Security sets the group-level security requirements. Operations created
// through this group inherit these requirements unless they call Security
// themselves, which replaces the group value. Call with no arguments to
// mark the group as public (overrides document-level security).
func (g *ViewGroup) Security(reqs ...SecurityRequirement) *ViewGroup {
	if reqs == nil {
		reqs = []SecurityRequirement{}
	}
	g.defaults.security = reqs
	g.defaults.securitySet = true
	return g
}

// Deprecated marks all operations in this group as deprecated. This is a
// one-way latch: individual operations cannot undo group deprecation.
func (g *ViewGroup) Deprecated() *ViewGroup {
	g.defaults.deprecated = true
	return g
}

// Parameter adds a common parameter to the group defaults. Operations
// created through this group inherit these parameters and may add more.
func (g *ViewGroup) Parameter(param *Parameter) *ViewGroup {
	g.defaults.parameters = append(g.defaults.parameters, param)
	return g
}

// ExternalDocs sets external documentation for the group. Operations
// created through this group inherit this value unless they call
// ExternalDocs themselves, which replaces it.
func (g *ViewGroup) ExternalDocs(url, description string) *ViewGroup {
	g.defaults.externalDocs = &ExternalDocs{URL: url, Description: description}
	return g
}

// Response adds a shared response for the given HTTP status code. An
// operation-level Response call for the same status code overrides the
// group default.
func (g *ViewGroup) Response(statusCode int, body any) *ViewGroup {
	key := strconv.Itoa(statusCode)
	for i := range g.defaults.responses {
		if g.defaults.responses[i].Status == key {
			g.defaults.responses[i].Body = bodyOf(body)
			return g
		}
	}
	g.defaults.responses = append(g.defaults.responses, StatusBody{Status: key, Body: bodyOf(body)})
	return g
}

// ResponseDescription sets a custom description for a shared group response.
func (g *ViewGroup) ResponseDescription(statusCode int, desc string) *ViewGroup {
	key := strconv.Itoa(statusCode)
	if g.defaults.responseDescriptions == nil {
		g.defaults.responseDescriptions = make(map[string]string)
	}
	g.defaults.responseDescriptions[key] = desc
	return g
}

// MediaType sets the parsers and renderers of the group's views.
func (g *ViewGroup) MediaType(mediaTypes ...string) *ViewGroup {
	g.defaults.parsers = mediaTypes
	g.defaults.renderers = mediaTypes
	return g
}

// Paginate sets the paginator of the group's views.
func (g *ViewGroup) Paginate(p *resource.Paginator) *ViewGroup {
	g.defaults.paginator = p
	return g
}

// Filter appends filter backends to the group's views.
func (g *ViewGroup) Filter(backends ...resource.FilterBackend) *ViewGroup {
	g.defaults.filters = append(g.defaults.filters, backends...)
	return g
}

// Inspector sets the view inspector of the group's views.
func (g *ViewGroup) Inspector(vi ViewInspector) *ViewGroup {
	g.defaults.inspector = vi
	return g
}

// ViewSet creates and registers a viewset carrying the group defaults.
func (g *ViewGroup) ViewSet(name, prefix string, r *resource.Resource, actions ...Action) *View {
	return g.register(NewViewSet(name, prefix, r, actions...))
}

// APIView creates and registers a plain view carrying the group defaults.
func (g *ViewGroup) APIView(name, path string, r *resource.Resource, methods ...string) *View {
	return g.register(NewAPIView(name, path, r, methods...))
}

func (g *ViewGroup) register(v *View) *View {
	d := g.defaults
	v.defaults = &d
	if len(d.parsers) > 0 {
		v.Parsers = d.parsers
	}
	if len(d.renderers) > 0 {
		v.Renderers = d.renderers
	}
	if d.paginator != nil {
		v.Paginator = d.paginator
	}
	v.FilterBackends = append(v.FilterBackends, d.filters...)
	if d.inspector != nil {
		v.Inspector = d.inspector
	}
	g.spec.Register(v)
	return v
}

// apply copies the operation defaults into a new builder.
func (d *groupDefaults) apply(b *OperationBuilder) {
	if len(d.tags) > 0 {
		b.meta.tags = append(b.meta.tags, d.tags...)
	}

	if d.securitySet {
		b.meta.security = d.security
	}

	if d.deprecated {
		b.meta.deprecated = true
	}

	if len(d.parameters) > 0 {
		b.meta.parameters = append(b.meta.parameters, d.parameters...)
	}

	if d.externalDocs != nil {
		b.meta.externalDocs = d.externalDocs
	}

	for _, r := range d.responses {
		b.setResponse(r.Status, r.Body)
	}

	if len(d.responseDescriptions) > 0 {
		if b.meta.responseDescriptions == nil {
			b.meta.responseDescriptions = make(map[string]string)
		}
		for key, desc := range d.responseDescriptions {
			b.meta.responseDescriptions[key] = desc
		}
	}
}
