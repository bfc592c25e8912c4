package openapi

import (
	"github.com/sirupsen/logrus"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// Result is the outcome of probing one inspector: a produced value, a
// deferral to the next inspector in the chain, or a failure that aborts
// the build.
type Result[T any] struct {
	value    T
	err      error
	produced bool
}

// Produced wraps a value returned by an inspector that handled the object.
func Produced[T any](v T) Result[T] {
	return Result[T]{value: v, produced: true}
}

// Deferred reports that the inspector does not handle the object.
func Deferred[T any]() Result[T] {
	return Result[T]{}
}

// Failed reports a fatal error.
func Failed[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Handled reports whether the result ends the probe.
func (r Result[T]) Handled() bool {
	return r.produced || r.err != nil
}

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Mode is the direction a schema is built for.
type Mode int

const (
	// ModeUnspecified builds documentation without a concrete direction.
	ModeUnspecified Mode = iota
	// ModeResponse builds schemas for data received from the service.
	ModeResponse
	// ModeCreate builds request schemas for creating objects.
	ModeCreate
	// ModeUpdate builds request schemas for replacing or patching objects.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeResponse:
		return "response"
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	}
	return "unspecified"
}

// IsRequest reports whether the mode describes a request body.
func (m Mode) IsRequest() bool {
	return m == ModeCreate || m == ModeUpdate
}

// RequestOrUnknown reports whether fields may be required in this mode.
func (m Mode) RequestOrUnknown() bool {
	return m == ModeUnspecified || m.IsRequest()
}

// FieldInspector turns one field descriptor into a schema.
type FieldInspector interface {
	InspectField(c *Context, f *resource.Field) Result[*Schema]
}

// SerializerInspector turns a whole resource descriptor into a schema. It is
// probed over the field inspector list.
type SerializerInspector interface {
	InspectSerializer(c *Context, r *resource.Resource) Result[*Schema]
}

// ResultFilter post-processes the schema produced for a field. After a
// producer is found, the filters of every probed inspector run in reverse
// order.
type ResultFilter interface {
	FilterField(c *Context, f *resource.Field, s *Schema) *Schema
}

// PaginatorInspector describes paginated list responses.
type PaginatorInspector interface {
	PaginatedResponse(c *Context, p *resource.Paginator, schema *Schema) Result[*Schema]
	PaginationParameters(c *Context, p *resource.Paginator) Result[[]*Parameter]
}

// FilterInspector describes the query parameters of a filter backend.
type FilterInspector interface {
	FilterParameters(c *Context, b resource.FilterBackend) Result[[]*Parameter]
}

// Inspectors is the ordered configuration of a build.
type Inspectors struct {
	Fields     []FieldInspector
	Paginators []PaginatorInspector
	Filters    []FilterInspector
	Views      []ViewInspector
}

// DefaultInspectors returns the plain REST inspectors.
func DefaultInspectors() Inspectors {
	return Inspectors{
		Fields: []FieldInspector{
			ReferencingSerializerInspector{},
			RelatedFieldInspector{},
			SimpleFieldInspector{},
			StringDefaultFieldInspector{},
		},
		Paginators: []PaginatorInspector{PaginatorEnvelopeInspector{}},
		Filters:    []FilterInspector{QueryFilterInspector{}},
		Views:      []ViewInspector{DefaultViewInspector{}},
	}
}

// Context carries everything an inspector may look at while one operation
// is built.
type Context struct {
	View     *View
	Endpoint Endpoint
	Mode     Mode

	// Operation holds the overrides declared for the endpoint.
	Operation *OperationBuilder

	Registry   *resource.Registry
	Components *SchemaRegistry
	Logger     logrus.FieldLogger

	inspectors Inspectors
	included   bool
	depth      int
}

// NewContext creates the context of one operation.
func NewContext(v *View, ep Endpoint, reg *resource.Registry, comps *SchemaRegistry, ins Inspectors, logger logrus.FieldLogger) *Context {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if comps == nil {
		comps = NewSchemaRegistry()
	}
	return &Context{
		View:       v,
		Endpoint:   ep,
		Registry:   reg,
		Components: comps,
		Logger:     logger,
		inspectors: ins,
	}
}

// WithMode returns a copy of the context using mode m.
func (c *Context) WithMode(m Mode) *Context {
	cp := *c
	cp.Mode = m
	return &cp
}

// ForIncluded returns a copy of the context describing an included resource.
func (c *Context) ForIncluded() *Context {
	cp := *c
	cp.included = true
	cp.depth = 0
	if cp.Mode == ModeUnspecified {
		cp.Mode = ModeResponse
	}
	return &cp
}

// Included reports whether an included resource is being described.
func (c *Context) Included() bool {
	return c.included
}

// Nested returns a copy of the context one resource level deeper.
func (c *Context) Nested() *Context {
	cp := *c
	cp.depth++
	return &cp
}

// IsRoot reports whether the resource being described is the operation's
// top-level body rather than the value of a nested field.
func (c *Context) IsRoot() bool {
	return c.depth == 0
}

// Inspectors returns the inspector configuration of the build.
func (c *Context) Inspectors() Inspectors {
	return c.inspectors
}

// Method returns the HTTP method of the operation.
func (c *Context) Method() string {
	return c.Endpoint.Method
}

// Log returns the logger with the operation fields attached.
func (c *Context) Log() logrus.FieldLogger {
	fields := logrus.Fields{"method": c.Endpoint.Method, "path": c.Endpoint.Path}
	if c.View != nil {
		fields["view"] = c.View.Name
	}
	return c.Logger.WithFields(fields)
}

// ProbeField runs the field inspectors until one handles f. A nil schema
// and nil error mean every inspector deferred.
func (c *Context) ProbeField(f *resource.Field) (*Schema, error) {
	fields := c.inspectors.Fields
	for i, ins := range fields {
		res := ins.InspectField(c, f)
		if !res.Handled() {
			continue
		}
		schema, err := res.Unwrap()
		if err != nil {
			return nil, err
		}
		for j := i; j >= 0; j-- {
			if filter, ok := fields[j].(ResultFilter); ok && schema != nil {
				schema = filter.FilterField(c, f, schema)
			}
		}
		return schema, nil
	}
	return nil, nil
}

// ProbeSerializer runs the serializer inspectors until one handles r.
func (c *Context) ProbeSerializer(r *resource.Resource) (*Schema, error) {
	for _, ins := range c.inspectors.Fields {
		si, ok := ins.(SerializerInspector)
		if !ok {
			continue
		}
		if res := si.InspectSerializer(c, r); res.Handled() {
			return res.Unwrap()
		}
	}
	return nil, nil
}

// ProbePaginatedResponse wraps a list response schema with the paginator
// envelope. When no inspector handles the paginator the schema is returned
// unchanged.
func (c *Context) ProbePaginatedResponse(p *resource.Paginator, schema *Schema) (*Schema, error) {
	for _, ins := range c.inspectors.Paginators {
		if res := ins.PaginatedResponse(c, p, schema); res.Handled() {
			return res.Unwrap()
		}
	}
	return schema, nil
}

// ProbePagination returns the query parameters of a paginator.
func (c *Context) ProbePagination(p *resource.Paginator) ([]*Parameter, error) {
	for _, ins := range c.inspectors.Paginators {
		if res := ins.PaginationParameters(c, p); res.Handled() {
			return res.Unwrap()
		}
	}
	return nil, nil
}

// ProbeFilter returns the query parameters of a filter backend.
func (c *Context) ProbeFilter(b resource.FilterBackend) ([]*Parameter, error) {
	for _, ins := range c.inspectors.Filters {
		if res := ins.FilterParameters(c, b); res.Handled() {
			return res.Unwrap()
		}
	}
	return nil, nil
}
