package resource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownResource is returned when an included declaration names a
	// resource that is not registered.
	ErrUnknownResource = errors.New("resource: unknown resource")

	// ErrUnknownModel is returned when a relation names a model that is not
	// registered.
	ErrUnknownModel = errors.New("resource: unknown model")

	// ErrDuplicate is returned when a model or resource name is registered twice.
	ErrDuplicate = errors.New("resource: duplicate name")
)

// Registry resolves models and resources by name.
type Registry struct {
	models    map[string]*Model
	modelSeq  []*Model
	resources map[string]*Resource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models:    make(map[string]*Model),
		resources: make(map[string]*Resource),
	}
}

// AddModel registers models by name.
func (reg *Registry) AddModel(models ...*Model) error {
	for _, m := range models {
		if _, ok := reg.models[m.Name]; ok {
			return fmt.Errorf("%w: model %q", ErrDuplicate, m.Name)
		}
		reg.models[m.Name] = m
		reg.modelSeq = append(reg.modelSeq, m)
	}
	return nil
}

// AddResource registers resources by name.
func (reg *Registry) AddResource(resources ...*Resource) error {
	for _, r := range resources {
		if _, ok := reg.resources[r.Name]; ok {
			return fmt.Errorf("%w: resource %q", ErrDuplicate, r.Name)
		}
		reg.resources[r.Name] = r
	}
	return nil
}

// Model returns the model with the given name.
func (reg *Registry) Model(name string) (*Model, error) {
	if reg != nil {
		if m, ok := reg.models[name]; ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// Resource returns the resource with the given name.
func (reg *Registry) Resource(name string) (*Resource, error) {
	if reg != nil {
		if r, ok := reg.resources[name]; ok {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// NamedResource is a resolved included declaration.
type NamedResource struct {
	Name     string
	Resource *Resource
}

// Included resolves the included declarations of r in declaration order.
func (reg *Registry) Included(r *Resource) ([]NamedResource, error) {
	if len(r.Includes) == 0 {
		return nil, nil
	}
	out := make([]NamedResource, 0, len(r.Includes))
	for _, inc := range r.Includes {
		target, err := reg.resolveInclude(r, inc)
		if err != nil {
			return nil, fmt.Errorf("%s.included[%s]: %w", r.Name, inc.Name, err)
		}
		out = append(out, NamedResource{Name: inc.Name, Resource: target})
	}
	return out, nil
}

func (reg *Registry) resolveInclude(r *Resource, inc Include) (*Resource, error) {
	if inc.Target != nil {
		return inc.Target, nil
	}
	if inc.Ref == SelfRef {
		return r, nil
	}
	return reg.Resource(inc.Ref)
}

// RelatedModel returns the model a relation field points to. The lookup
// prefers the field's declared model, then the nested resource's model, and
// finally walks the parent model's relations along the dotted source,
// following reverse accessors as well. A nil model and nil error mean the
// target could not be determined.
func (reg *Registry) RelatedModel(f *Field) (*Model, error) {
	if f.RelatedModel != "" {
		return reg.Model(f.RelatedModel)
	}
	if f.Nested != nil && f.Nested.Model != nil {
		return f.Nested.Model, nil
	}
	parent := f.Parent()
	if parent == nil || parent.Model == nil {
		return nil, nil
	}
	source := f.SourceAttr()
	if source == "*" {
		return parent.Model, nil
	}

	current := parent.Model
	for segment := range strings.SplitSeq(source, ".") {
		next, err := reg.follow(current, segment)
		if err != nil || next == nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// follow resolves one relation hop from model m.
func (reg *Registry) follow(m *Model, attr string) (*Model, error) {
	if c := m.Column(attr); c != nil {
		if !c.Type.IsRelation() || c.Related == "" {
			return nil, nil
		}
		if c.Related == SelfRef || c.Related == m.Name {
			return m, nil
		}
		return reg.Model(c.Related)
	}
	if reg == nil {
		return nil, nil
	}
	for _, other := range reg.modelSeq {
		for _, c := range other.Columns {
			if !c.Type.IsRelation() || c.RelatedName != attr {
				continue
			}
			if c.Related == m.Name || (c.Related == SelfRef && other == m) {
				return other, nil
			}
		}
	}
	return nil, nil
}
