package manifest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vitalvas/jsonapi-openapi/jsonapi"
	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// Registry builds the models and resource descriptors of the manifest.
// Nested fields and included resources may reference resources declared
// later in the file.
func (m *Manifest) Registry() (*resource.Registry, error) {
	reg := resource.NewRegistry()
	for _, mm := range m.Models {
		if mm.Name == "" {
			return nil, fmt.Errorf("%w: model without name", ErrInvalid)
		}
		model := resource.NewModel(mm.Name, mm.Columns...)
		model.ResourceName = mm.ResourceName
		if err := reg.AddModel(model); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	built := make([]*resource.Resource, len(m.Resources))
	for i, rm := range m.Resources {
		if rm.Name == "" {
			return nil, fmt.Errorf("%w: resource without name", ErrInvalid)
		}
		var model *resource.Model
		if rm.Model != "" {
			var err error
			if model, err = reg.Model(rm.Model); err != nil {
				return nil, fmt.Errorf("%w: resource %q: %w", ErrInvalid, rm.Name, err)
			}
		}
		r := resource.New(rm.Name, model).WithType(rm.Type)
		for _, fm := range rm.Fields {
			r.Add(fm.field())
		}
		for _, inc := range rm.Include {
			r.Include(inc.Name, inc.Resource)
		}
		if err := reg.AddResource(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		built[i] = r
	}

	// Second pass: nested descriptors and include references.
	for i, rm := range m.Resources {
		r := built[i]
		for _, fm := range rm.Fields {
			if fm.Nested == "" {
				continue
			}
			nested, err := reg.Resource(fm.Nested)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalid, rm.Name, fm.Name, err)
			}
			r.Field(fm.Name).Nested = nested
		}
		if _, err := reg.Included(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return reg, nil
}

func (fm Field) field() *resource.Field {
	f := &resource.Field{
		Name:         fm.Name,
		Source:       fm.Source,
		Kind:         fm.Kind,
		Relation:     fm.Relation,
		Many:         fm.Many,
		ReadOnly:     fm.ReadOnly,
		WriteOnly:    fm.WriteOnly,
		Required:     fm.Required && !fm.ReadOnly,
		AllowNull:    fm.AllowNull,
		RelatedType:  fm.RelatedType,
		RelatedModel: fm.RelatedModel,
		RelatedLink:  fm.Links.Related,
		SelfLink:     fm.Links.Self,
		Help:         fm.Help,
		Default:      fm.Default,
		Choices:      fm.Choices,
		Constraints:  fm.Constraints,
	}
	if fm.Nested != "" {
		f.Relation = resource.RelationNested
		if f.Kind == resource.KindString {
			f.Kind = resource.KindObject
		}
	}
	return f
}

// Spec builds the registry, the document metadata and every view, with the
// JSON:API inspectors registered. A nil logger uses the standard logger.
func (m *Manifest) Spec(logger logrus.FieldLogger) (*openapi.Spec, error) {
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(m.Info, reg).SetLogger(logger)
	for _, s := range m.Servers {
		spec.AddServer(s)
	}
	for _, tag := range m.Tags {
		spec.AddTag(tag)
	}
	if len(m.Security) > 0 {
		spec.SetSecurity(m.Security...)
	}
	for name, scheme := range m.SecurityDefs {
		spec.AddSecurityScheme(name, scheme)
	}
	settings := m.Settings()
	if settings.Logger == nil {
		settings.Logger = logger
	}
	jsonapi.Register(spec, settings)

	for _, vm := range m.Views {
		v, err := vm.view(reg)
		if err != nil {
			return nil, err
		}
		if err := vm.applyOperations(v, reg); err != nil {
			return nil, err
		}
		spec.Register(v)
	}
	return spec, nil
}

func (vm View) view(reg *resource.Registry) (*openapi.View, error) {
	if vm.Name == "" {
		return nil, fmt.Errorf("%w: view without name", ErrInvalid)
	}
	var r *resource.Resource
	if vm.Resource != "" {
		var err error
		if r, err = reg.Resource(vm.Resource); err != nil {
			return nil, fmt.Errorf("%w: view %q: %w", ErrInvalid, vm.Name, err)
		}
	}

	var v *openapi.View
	switch {
	case vm.Prefix != "" && vm.Path != "":
		return nil, fmt.Errorf("%w: view %q declares both prefix and path", ErrInvalid, vm.Name)
	case vm.Prefix != "":
		for _, a := range vm.Actions {
			if !isAction(a) {
				return nil, fmt.Errorf("%w: view %q: unknown action %q", ErrInvalid, vm.Name, a)
			}
		}
		v = openapi.NewViewSet(vm.Name, vm.Prefix, r, vm.Actions...)
		if vm.Lookup != "" {
			v.Lookup(vm.Lookup)
		}
	case vm.Path != "":
		methods := vm.Methods
		if len(methods) == 0 {
			methods = []string{http.MethodGet}
		}
		v = openapi.NewAPIView(vm.Name, vm.Path, r, methods...)
	default:
		return nil, fmt.Errorf("%w: view %q declares neither prefix nor path", ErrInvalid, vm.Name)
	}

	v.Basename = vm.Basename
	v.ResourceName = vm.ResourceName
	v.Tags = vm.Tags
	if vm.JSONAPI {
		v.WithMediaType(jsonapi.MediaType)
	}
	if len(vm.Parsers) > 0 {
		v.WithParsers(vm.Parsers...)
	}
	if len(vm.Renderers) > 0 {
		v.WithRenderers(vm.Renderers...)
	}
	if p := vm.Paginator; p != nil {
		v.Paginate(&resource.Paginator{
			Style:       p.Style,
			JSONAPI:     p.JSONAPI || vm.JSONAPI,
			PageParam:   p.PageParam,
			SizeParam:   p.SizeParam,
			LimitParam:  p.LimitParam,
			OffsetParam: p.OffsetParam,
		})
	}
	for _, f := range vm.Filters {
		v.Filter(resource.FilterBackend{Kind: f.Kind, Fields: f.Fields, Param: f.Param})
	}
	return v, nil
}

func isAction(a openapi.Action) bool {
	for _, known := range openapi.CRUD {
		if a == known {
			return true
		}
	}
	return false
}

// applyOperations copies the operation overrides onto v. Keys that are
// not action names are HTTP methods.
func (vm View) applyOperations(v *openapi.View, reg *resource.Registry) error {
	for key, om := range vm.Operations {
		if !isAction(openapi.Action(key)) {
			key = strings.ToUpper(key)
		}
		b := v.Op(key)
		if om.OperationID != "" {
			b.OperationID(om.OperationID)
		}
		if om.Summary != "" {
			b.Summary(om.Summary)
		}
		if om.Description != "" {
			b.Description(om.Description)
		}
		if len(om.Tags) > 0 {
			b.Tags(om.Tags...)
		}
		if om.Deprecated {
			b.Deprecated()
		}
		if om.Request != nil {
			body, err := om.Request.body(reg)
			if err != nil {
				return fmt.Errorf("%w: view %q operation %s request: %w", ErrInvalid, vm.Name, key, err)
			}
			b.Request(body)
		}
		for status, bm := range om.Responses {
			body, err := bm.body(reg)
			if err != nil {
				return fmt.Errorf("%w: view %q operation %s response %s: %w", ErrInvalid, vm.Name, key, status, err)
			}
			if status == "default" {
				b.DefaultResponse(body)
				continue
			}
			code, err := strconv.Atoi(status)
			if err != nil {
				return fmt.Errorf("%w: view %q operation %s: invalid status %q", ErrInvalid, vm.Name, key, status)
			}
			b.Response(code, body)
		}
	}
	return nil
}

func (bm Body) body(reg *resource.Registry) (openapi.Body, error) {
	out := openapi.Body{Many: bm.Many, Description: bm.Description}
	if bm.Resource != "" {
		r, err := reg.Resource(bm.Resource)
		if err != nil {
			return openapi.Body{}, err
		}
		out.Resource = r
	}
	if !bm.Schema.IsZero() {
		schema, err := schemaFromNode(&bm.Schema)
		if err != nil {
			return openapi.Body{}, err
		}
		out.Schema = schema
	}
	return out, nil
}
