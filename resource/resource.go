package resource

// SelfRef is the include reference naming the declaring resource.
const SelfRef = "self"

// Include declares a related resource that may be embedded in responses.
// Exactly one of Target and Ref is set; Ref is resolved by Registry.Included.
type Include struct {
	Name   string
	Target *Resource
	Ref    string
}

// Resource is a resource descriptor: the ordered fields of one entity type.
type Resource struct {
	Name string
	// Type overrides the resource type derived from the model.
	Type     string
	Model    *Model
	Fields   []*Field
	Includes []Include
}

// New creates a resource descriptor and binds the given fields to it.
// A nil model creates a resource that is not model-backed.
func New(name string, model *Model, fields ...*Field) *Resource {
	r := &Resource{Name: name, Model: model}
	r.Add(fields...)
	return r
}

// Add appends fields in declaration order and binds them.
func (r *Resource) Add(fields ...*Field) *Resource {
	for _, f := range fields {
		r.Fields = append(r.Fields, f.Bind(r))
	}
	return r
}

// Include declares an included resource by registry name or SelfRef.
func (r *Resource) Include(name, ref string) *Resource {
	r.Includes = append(r.Includes, Include{Name: name, Ref: ref})
	return r
}

// IncludeResource declares an included resource by descriptor.
func (r *Resource) IncludeResource(name string, target *Resource) *Resource {
	r.Includes = append(r.Includes, Include{Name: name, Target: target})
	return r
}

// WithType sets the explicit resource type.
func (r *Resource) WithType(resourceType string) *Resource {
	r.Type = resourceType
	return r
}

// Field returns the field with the given name.
func (r *Resource) Field(name string) *Field {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldBySource returns the first field reading the given model attribute.
func (r *Resource) FieldBySource(source string) *Field {
	for _, f := range r.Fields {
		if f.SourceAttr() == source {
			return f
		}
	}
	return nil
}

// ModelBacked reports whether the resource is bound to a model.
func (r *Resource) ModelBacked() bool {
	return r.Model != nil
}

// HasIncludes reports whether the resource declares included resources.
func (r *Resource) HasIncludes() bool {
	return len(r.Includes) > 0
}

// IncludeFor returns the include declaration with the given name.
func (r *Resource) IncludeFor(name string) (Include, bool) {
	for _, inc := range r.Includes {
		if inc.Name == name {
			return inc, true
		}
	}
	return Include{}, false
}
