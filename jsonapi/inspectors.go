package jsonapi

import (
	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// SerializerInspector renders the top-level resource of JSON:API bodies as
// a resource object. Nested resources and non JSON:API views are left to
// the next inspector.
type SerializerInspector struct {
	Settings Settings
}

// InspectField defers; the inspector only handles whole descriptors.
func (SerializerInspector) InspectField(*openapi.Context, *resource.Field) openapi.Result[*openapi.Schema] {
	return openapi.Deferred[*openapi.Schema]()
}

// InspectSerializer builds the resource object of r.
func (si SerializerInspector) InspectSerializer(c *openapi.Context, r *resource.Resource) openapi.Result[*openapi.Schema] {
	if !c.IsRoot() || !handlesBody(c) {
		return openapi.Deferred[*openapi.Schema]()
	}
	schema, err := si.ResourceObject(c, r)
	if err != nil {
		return openapi.Failed[*openapi.Schema](err)
	}
	return openapi.Produced(schema)
}

// handlesBody reports whether the body described by c is a JSON:API one.
func handlesBody(c *openapi.Context) bool {
	if !c.Mode.IsRequest() && IsResponse(c.View) {
		return true
	}
	return c.Mode.RequestOrUnknown() && IsRequest(c.View)
}

// ResourceObject builds the {type, id, attributes, relationships, links}
// schema of r.
//
// See: https://jsonapi.org/format/#document-resource-objects
func (si SerializerInspector) ResourceObject(c *openapi.Context, r *resource.Resource) (*openapi.Schema, error) {
	cl := Classifier{Settings: si.Settings}
	cls, err := cl.Classify(c, r)
	if err != nil {
		return nil, err
	}

	typeName := si.Settings.ResourceType(r)
	if !c.Included() {
		typeName = si.Settings.ViewType(c.View, r)
	}

	props := openapi.NewProperties().Set("type", &openapi.Schema{
		Type:    openapi.TypeString("string"),
		Pattern: typeName,
	})
	required := []string{"type"}

	if cls.ID != nil && !si.omitID(c, cls.ID) {
		idSchema, err := c.ProbeField(cls.ID)
		if err != nil {
			return nil, err
		}
		if idSchema != nil {
			props.Set("id", idSchema)
			required = append(required, "id")
		}
	}
	if cls.Attributes.Len() > 0 {
		props.Set("attributes", openapi.ObjectSchema(cls.Attributes, cls.RequiredAttributes...))
		if len(cls.RequiredAttributes) > 0 {
			required = append(required, "attributes")
		}
	}
	if cls.Relationships.Len() > 0 {
		props.Set("relationships", openapi.ObjectSchema(cls.Relationships, cls.RequiredRelationships...))
		if len(cls.RequiredRelationships) > 0 {
			required = append(required, "relationships")
		}
	}
	if cls.Links.Len() > 0 && !c.Mode.IsRequest() {
		props.Set("links", openapi.ObjectSchema(cls.Links))
	}

	schema := openapi.ObjectSchema(props)
	if c.Mode.RequestOrUnknown() {
		schema.Required = required
	}
	return schema, nil
}

// omitID reports whether the id member is left out of a create request.
func (si SerializerInspector) omitID(c *openapi.Context, id *resource.Field) bool {
	if c.Mode != openapi.ModeCreate {
		return false
	}
	return si.Settings.StripReadOnlyFromRequest || id.ReadOnly
}

// IntegerIDFieldInspector renders integer primary keys as strings with an
// int32 or int64 format, and integer id fields of non-model resources as
// plain strings. JSON:API identifiers are always strings.
type IntegerIDFieldInspector struct{}

// InspectField handles integer identifier fields of JSON:API views.
func (IntegerIDFieldInspector) InspectField(c *openapi.Context, f *resource.Field) openapi.Result[*openapi.Schema] {
	if f.IsRelation() || f.Kind != resource.KindInteger || !Is(c.View) {
		return openapi.Deferred[*openapi.Schema]()
	}
	parent := f.Parent()
	if parent != nil && parent.Model != nil {
		col := parent.Model.Column(f.SourceAttr())
		if col != nil && col.PrimaryKey && col.Type.IsInteger() {
			return openapi.Produced(integerIDSchema(col.Type))
		}
		return openapi.Deferred[*openapi.Schema]()
	}
	if f.Name == "id" {
		return openapi.Produced(&openapi.Schema{Type: openapi.TypeString("string")})
	}
	return openapi.Deferred[*openapi.Schema]()
}

// IntegerPrimaryKeyRelatedFieldInspector renders to-one relations whose
// target has an integer primary key as formatted strings.
type IntegerPrimaryKeyRelatedFieldInspector struct{}

// InspectField handles primary key, resource and method relations.
func (IntegerPrimaryKeyRelatedFieldInspector) InspectField(c *openapi.Context, f *resource.Field) openapi.Result[*openapi.Schema] {
	switch f.Relation {
	case resource.RelationPrimaryKey, resource.RelationResource, resource.RelationSerializerMethod:
	default:
		return openapi.Deferred[*openapi.Schema]()
	}
	if f.Many || !Is(c.View) {
		return openapi.Deferred[*openapi.Schema]()
	}
	model, err := c.Registry.RelatedModel(f)
	if err != nil {
		return openapi.Failed[*openapi.Schema](err)
	}
	if pk := model.PrimaryKey(); pk != nil && pk.Type.IsInteger() {
		return openapi.Produced(integerIDSchema(pk.Type))
	}
	return openapi.Deferred[*openapi.Schema]()
}

func integerIDSchema(t resource.ColumnType) *openapi.Schema {
	format := "int32"
	if t.Is64Bit() {
		format = "int64"
	}
	return &openapi.Schema{Type: openapi.TypeString("string"), Format: format}
}

// ManyRelatedFieldInspector renders a to-many relation of a resource object
// as the schema of one related identifier.
type ManyRelatedFieldInspector struct{}

// InspectField unwraps to-many relations of top-level JSON:API resources.
func (ManyRelatedFieldInspector) InspectField(c *openapi.Context, f *resource.Field) openapi.Result[*openapi.Schema] {
	if !f.IsRelation() || !f.Many || !c.IsRoot() || !Is(c.View) {
		return openapi.Deferred[*openapi.Schema]()
	}
	schema, err := c.ProbeField(f.Child())
	if err != nil {
		return openapi.Failed[*openapi.Schema](err)
	}
	if schema == nil {
		return openapi.Deferred[*openapi.Schema]()
	}
	return openapi.Produced(schema)
}

// XPropertiesFilter marks read-only and write-only fields. Read-only leaf
// strings, integers and booleans use readOnly; everything else, and every
// write-only field, uses the x-readOnly and x-writeOnly extensions.
type XPropertiesFilter struct{}

// InspectField defers; the filter only post-processes results.
func (XPropertiesFilter) InspectField(*openapi.Context, *resource.Field) openapi.Result[*openapi.Schema] {
	return openapi.Deferred[*openapi.Schema]()
}

// FilterField applies the read and write markers.
func (XPropertiesFilter) FilterField(_ *openapi.Context, f *resource.Field, s *openapi.Schema) *openapi.Schema {
	if f.WriteOnly {
		s.SetExtension("writeOnly", true)
	}
	if f.ReadOnly {
		if isLeaf(s) {
			s.ReadOnly = true
		} else {
			s.SetExtension("readOnly", true)
		}
	}
	return s
}

func isLeaf(s *openapi.Schema) bool {
	types := s.Type.Values()
	if len(types) == 0 {
		return false
	}
	switch types[0] {
	case "string", "integer", "boolean":
		return true
	}
	return false
}
