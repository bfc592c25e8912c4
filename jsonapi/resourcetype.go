package jsonapi

import (
	"github.com/jinzhu/inflection"

	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// FormatType applies the type format policy and pluralization to a name.
func (s Settings) FormatType(name string) string {
	name = s.FormatTypes.Apply(name)
	if s.PluralizeTypes {
		name = inflection.Plural(name)
	}
	return name
}

// ModelType returns the resource type of objects of model m.
func (s Settings) ModelType(m *resource.Model) string {
	if m.ResourceName != "" {
		return m.ResourceName
	}
	return s.FormatType(m.Name)
}

// ResourceType returns the resource type rendered for r: the explicit type,
// the type of its model, or the formatted descriptor name.
func (s Settings) ResourceType(r *resource.Resource) string {
	switch {
	case r.Type != "":
		return r.Type
	case r.Model != nil:
		return s.ModelType(r.Model)
	}
	return s.FormatType(openapi.ComponentName(r.Name))
}

// ViewType returns the resource type of a view's top-level data. A nil
// view or a view without resource falls back to r.
func (s Settings) ViewType(v *openapi.View, r *resource.Resource) string {
	if v != nil {
		if v.ResourceName != "" {
			return v.ResourceName
		}
		if v.Resource != nil {
			return s.ResourceType(v.Resource)
		}
	}
	return s.ResourceType(r)
}
