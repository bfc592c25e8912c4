package openapi

import (
	"fmt"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// ReferencingSerializerInspector renders a resource descriptor as a plain
// object stored in the component schemas and returns a $ref to it.
type ReferencingSerializerInspector struct{}

// InspectField defers; the inspector only handles whole descriptors.
func (ReferencingSerializerInspector) InspectField(*Context, *resource.Field) Result[*Schema] {
	return Deferred[*Schema]()
}

// InspectSerializer returns a $ref to the component of r.
func (ReferencingSerializerInspector) InspectSerializer(c *Context, r *resource.Resource) Result[*Schema] {
	ref, err := c.Components.Component(r, "", func() (*Schema, error) {
		return PlainObject(c.Nested(), r)
	})
	if err != nil {
		return Failed[*Schema](err)
	}
	return Produced(ref)
}

// PlainObject builds an object schema with one property per field. Fields
// are required when declared required and writable.
func PlainObject(c *Context, r *resource.Resource) (*Schema, error) {
	props := NewProperties()
	var required []string
	for _, f := range r.Fields {
		schema, err := c.ProbeField(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", r.Name, f.Name, err)
		}
		if schema == nil {
			continue
		}
		props.Set(f.Name, schema)
		if f.Required && !f.ReadOnly {
			required = append(required, f.Name)
		}
	}
	return ObjectSchema(props, required...), nil
}

// RelatedFieldInspector handles relation fields: primary keys take the type
// of the related model's primary key, hyperlinks are URIs and nested
// resources are probed as serializers.
type RelatedFieldInspector struct{}

// InspectField renders relation fields.
func (RelatedFieldInspector) InspectField(c *Context, f *resource.Field) Result[*Schema] {
	if !f.IsRelation() {
		return Deferred[*Schema]()
	}

	if f.Many {
		item, err := c.ProbeField(f.Child())
		if err != nil {
			return Failed[*Schema](err)
		}
		if item == nil {
			item = &Schema{Type: TypeString("string")}
		}
		return Produced(ArrayOf(item))
	}

	switch f.Relation {
	case resource.RelationNested:
		schema, err := c.Nested().ProbeSerializer(f.Nested)
		if err != nil {
			return Failed[*Schema](err)
		}
		if schema == nil {
			return Deferred[*Schema]()
		}
		if f.ReadOnly {
			schema.ReadOnly = true
		}
		return Produced(schema)

	case resource.RelationHyperlinked, resource.RelationHyperlinkedIdentity:
		return Produced(&Schema{Type: TypeString("string"), Format: "uri", ReadOnly: f.ReadOnly})
	}

	schema := &Schema{Type: TypeString("string")}
	model, err := c.Registry.RelatedModel(f)
	if err != nil {
		return Failed[*Schema](err)
	}
	if pk := model.PrimaryKey(); pk != nil {
		schema = KindSchema(pk.Type.Kind())
	}
	schema.ReadOnly = f.ReadOnly
	if f.Help != "" {
		schema.Description = f.Help
	}
	if f.AllowNull {
		applyNullable(schema)
	}
	return Produced(schema)
}

// SimpleFieldInspector handles every non-string value kind.
type SimpleFieldInspector struct{}

// InspectField maps the field kind to a schema.
func (SimpleFieldInspector) InspectField(_ *Context, f *resource.Field) Result[*Schema] {
	if f.IsRelation() || f.Kind == resource.KindString {
		return Deferred[*Schema]()
	}
	schema := decorate(KindSchema(f.Kind), f)
	schema.ReadOnly = f.ReadOnly
	return Produced(schema)
}

// StringDefaultFieldInspector renders anything left as a string.
type StringDefaultFieldInspector struct{}

// InspectField always produces a string schema.
func (StringDefaultFieldInspector) InspectField(_ *Context, f *resource.Field) Result[*Schema] {
	schema := decorate(&Schema{Type: TypeString("string")}, f)
	schema.ReadOnly = f.ReadOnly
	return Produced(schema)
}
